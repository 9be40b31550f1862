package domain

import "gorm.io/datatypes"

// Image describes a Data Dragon sprite entry plus the resolved CDN URL.
type Image struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite,omitempty"`
	Group  string `json:"group"`
	URL    string `json:"url"`
}

type Champion struct {
	Version string                      `json:"-" gorm:"primaryKey"`
	ID      string                      `json:"id" gorm:"primaryKey"` // e.g., "Aatrox"
	Key     string                      `json:"key" gorm:"not null"`  // e.g., "266"
	Name    string                      `json:"name" gorm:"not null"` // Display name
	Title   string                      `json:"title"`                // e.g., "the Darkin Blade"
	Tags    datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	Image   Image                       `json:"image" gorm:"embedded;embeddedPrefix:image_"`
}

type ChampionTag string

const (
	TagFighter  ChampionTag = "Fighter"
	TagTank     ChampionTag = "Tank"
	TagMage     ChampionTag = "Mage"
	TagAssassin ChampionTag = "Assassin"
	TagSupport  ChampionTag = "Support"
	TagMarksman ChampionTag = "Marksman"
)
