package ddragon

// Raw Data Dragon payloads. Only the fields the catalog uses are decoded.

type versionsResponse []string

type imageResponse struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
}

type championsResponse struct {
	Type    string                      `json:"type"`
	Version string                      `json:"version"`
	Data    map[string]championResponse `json:"data"`
}

type championResponse struct {
	ID    string        `json:"id"`
	Key   string        `json:"key"`
	Name  string        `json:"name"`
	Title string        `json:"title"`
	Tags  []string      `json:"tags"`
	Image imageResponse `json:"image"`
}

type itemsResponse struct {
	Type    string                  `json:"type"`
	Version string                  `json:"version"`
	Data    map[string]itemResponse `json:"data"`
}

type itemResponse struct {
	Name      string          `json:"name"`
	Plaintext string          `json:"plaintext"`
	Tags      []string        `json:"tags"`
	Maps      map[string]bool `json:"maps"`
	Gold      struct {
		Base        int  `json:"base"`
		Total       int  `json:"total"`
		Sell        int  `json:"sell"`
		Purchasable bool `json:"purchasable"`
	} `json:"gold"`
	Image            imageResponse `json:"image"`
	InStore          *bool         `json:"inStore"`
	Consumed         bool          `json:"consumed"`
	Into             []string      `json:"into"`
	From             []string      `json:"from"`
	RequiredChampion string        `json:"requiredChampion"`
	RequiredAlly     string        `json:"requiredAlly"`
}

type runeTreeResponse struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slots []struct {
		Runes []struct {
			ID   int    `json:"id"`
			Key  string `json:"key"`
			Name string `json:"name"`
			Icon string `json:"icon"`
		} `json:"runes"`
	} `json:"slots"`
}
