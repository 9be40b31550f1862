package domain

import (
	"slices"

	"gorm.io/datatypes"
)

// Item tags used by the item filter.
const (
	ItemTagTrinket    = "Trinket"
	ItemTagConsumable = "Consumable"
	ItemTagBoots      = "Boots"
	ItemTagJungle     = "Jungle"
)

// PrimaryMapID is Summoner's Rift in the Data Dragon "maps" table.
const PrimaryMapID = "11"

type Gold struct {
	Base        int  `json:"base"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
	Purchasable bool `json:"purchasable"`
}

type Item struct {
	Version          string                              `json:"-" gorm:"primaryKey"`
	ID               string                              `json:"id" gorm:"primaryKey"` // e.g., "3031"
	Name             string                              `json:"name" gorm:"not null"`
	Plaintext        string                              `json:"plaintext"`
	Tags             datatypes.JSONSlice[string]         `json:"tags" gorm:"type:jsonb"`
	Maps             datatypes.JSONType[map[string]bool] `json:"maps" gorm:"type:jsonb"`
	Gold             Gold                                `json:"gold" gorm:"embedded;embeddedPrefix:gold_"`
	Image            Image                               `json:"image" gorm:"embedded;embeddedPrefix:image_"`
	InStore          *bool                               `json:"inStore,omitempty"` // nil when Data Dragon omits the field
	Consumed         bool                                `json:"consumed"`
	Into             datatypes.JSONSlice[string]         `json:"into" gorm:"type:jsonb"`
	From             datatypes.JSONSlice[string]         `json:"from" gorm:"type:jsonb"`
	RequiredChampion string                              `json:"requiredChampion,omitempty"`
	RequiredAlly     string                              `json:"requiredAlly,omitempty"`
}

// HasTag reports whether the item carries the given tag.
func (it *Item) HasTag(tag string) bool {
	return slices.Contains(it.Tags, tag)
}

// AvailableOn returns the availability flag for a map and whether the
// flag is present at all.
func (it *Item) AvailableOn(mapID string) (available, listed bool) {
	available, listed = it.Maps.Data()[mapID]
	return available, listed
}

// Keystone is a primary perk from the first slot of a rune tree.
type Keystone struct {
	Version string `json:"-" gorm:"primaryKey"`
	ID      int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Key     string `json:"key"`
	Name    string `json:"name" gorm:"not null"`
	Icon    string `json:"icon"`
	Tree    string `json:"tree"`
	// Ordinal is the keystone's position in the fetched list.
	Ordinal int    `json:"-" gorm:"not null;default:0"`
}
