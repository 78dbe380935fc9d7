package config

// RawCatalog is one YAML layer. Pointer fields and non-empty lists mean "set".
type RawCatalog struct {
	Version  string       `yaml:"version"`
	Economy  RawEconomy   `yaml:"economy"`
	Packs    []RawPack    `yaml:"packs,omitempty"`
	Roster   []RawPlayer  `yaml:"roster,omitempty"`
	SetTiers []RawTier    `yaml:"set_tiers,omitempty"`
	Wheel    []RawSegment `yaml:"wheel,omitempty"`
	Quests   []RawQuest   `yaml:"quests,omitempty"`
	Sets     []RawSet     `yaml:"collection_sets,omitempty"`
	Notes    string       `yaml:"notes,omitempty"`
}

type RawEconomy struct {
	InitialCoins     *int    `yaml:"initial_coins,omitempty"`
	ScoutCost        *int    `yaml:"scout_cost,omitempty"`
	AuctionSize      *int    `yaml:"auction_size,omitempty"`
	AuctionRefresh   *string `yaml:"auction_refresh,omitempty"` // Go duration, e.g. "15m"
	QuestRefresh     *string `yaml:"quest_refresh,omitempty"`
	WheelCooldown    *string `yaml:"wheel_cooldown,omitempty"`
	PackRetries      *int    `yaml:"pack_retries,omitempty"`
	GuaranteeRetries *int    `yaml:"guarantee_retries,omitempty"`
}

type RawOdds struct {
	Common    float64 `yaml:"common"`
	Rare      float64 `yaml:"rare"`
	Epic      float64 `yaml:"epic"`
	Legendary float64 `yaml:"legendary"`
	Goat      float64 `yaml:"goat"`
}

type RawPack struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       int     `yaml:"price"`
	CardCount   int     `yaml:"card_count"`
	Odds        RawOdds `yaml:"odds"`
	Guaranteed  string  `yaml:"guaranteed,omitempty"`
	Color       string  `yaml:"color,omitempty"`
	Description string  `yaml:"description,omitempty"`
}

type RawPlayer struct {
	Name       string `yaml:"name"`
	Team       string `yaml:"team"`
	Position   string `yaml:"position"`
	ExternalID string `yaml:"external_id,omitempty"`
}

type RawTier struct {
	Above float64 `yaml:"above"`
	Set   string  `yaml:"set"`
}

type RawSegment struct {
	Value       int     `yaml:"value"`
	Color       string  `yaml:"color"`
	Probability float64 `yaml:"probability"`
	Span        float64 `yaml:"span"`
}

type RawQuest struct {
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Target      int    `yaml:"target"`
	Reward      int    `yaml:"reward"`
}

type RawSet struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Reward      int    `yaml:"reward"`
	Team        string `yaml:"team,omitempty"`
	Set         string `yaml:"set,omitempty"`
	Rarity      string `yaml:"rarity,omitempty"`
	Count       int    `yaml:"count"`
}
