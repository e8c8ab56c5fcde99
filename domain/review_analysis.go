package domain

// ReviewFeatures are the hand-crafted text features sent alongside the
// classifier verdict. Version identifies the extraction function.
type ReviewFeatures struct {
	Version       int     `json:"version"`
	WordCount     int     `json:"word_count"`
	AvgWordLength float64 `json:"avg_word_length"`
}

type ReviewAnalysis struct {
	Pred       int            `json:"pred"`
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Features   ReviewFeatures `json:"features"`
}
