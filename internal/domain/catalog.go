package domain

import "time"

// Catalog is one normalized Data Dragon release. It is immutable once
// built; consumers share it by pointer.
type Catalog struct {
	Version   string     `json:"version" gorm:"primaryKey"`
	Locale    string     `json:"locale" gorm:"not null"`
	FetchedAt time.Time  `json:"fetchedAt" gorm:"index"`
	Champions []Champion `json:"champions" gorm:"foreignKey:Version;references:Version"`
	Items     []Item     `json:"items" gorm:"foreignKey:Version;references:Version"`
	Keystones []Keystone `json:"keystones" gorm:"foreignKey:Version;references:Version"`
}

func (Catalog) TableName() string {
	return "catalog_snapshots"
}

// Ready reports whether a round can be started from this catalog.
func (c *Catalog) Ready() bool {
	return c != nil && len(c.Champions) > 0
}

// Champion returns the champion with the given ID.
func (c *Catalog) Champion(id string) (*Champion, bool) {
	for i := range c.Champions {
		if c.Champions[i].ID == id {
			return &c.Champions[i], true
		}
	}
	return nil, false
}

// Item returns the item with the given ID.
func (c *Catalog) Item(id string) (*Item, bool) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], true
		}
	}
	return nil, false
}
