package domain

// ConceptType is the musical concept of a production.
type ConceptType string

const (
	ConceptSummer  ConceptType = "summer"
	ConceptIntense ConceptType = "intense"
	ConceptBallad  ConceptType = "ballad"
	ConceptHipHop  ConceptType = "hiphop"
)

func (c ConceptType) Valid() bool {
	switch c {
	case ConceptSummer, ConceptIntense, ConceptBallad, ConceptHipHop:
		return true
	}
	return false
}

// MarketType is the target market of a production. Japan and global targets
// carry an additive production surcharge.
type MarketType string

const (
	MarketDomestic MarketType = "domestic"
	MarketJapan    MarketType = "japan"
	MarketGlobal   MarketType = "global"
)

func (m MarketType) Valid() bool {
	switch m {
	case MarketDomestic, MarketJapan, MarketGlobal:
		return true
	}
	return false
}

// Lyrics carry the full generated text plus the hook line extracted from the
// labeled chorus section.
type Lyrics struct {
	Full string `json:"full"`
	Hook string `json:"hook"`
}

// Track is one produced song. It is created once per studio visit, may be
// replaced by a single retry, and is consumed by the music-show phase.
type Track struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Concept      ConceptType `json:"concept"`
	TargetMarket MarketType  `json:"targetMarket"`
	Lyrics       Lyrics      `json:"lyrics"`
	AudioURL     string      `json:"audioUrl"`
	Members      []*Idol     `json:"members"`
	Cost         int64       `json:"cost"`
}
