package domain

// JudgeScores are the five sub-scores of a music-show verdict, each 0-100.
type JudgeScores struct {
	Composition int `json:"composition"`
	Vocal       int `json:"vocal"`
	Performance int `json:"performance"`
	Popularity  int `json:"popularity"`
	Buzz        int `json:"buzz"`
}

// JudgeResult is the scored outcome of a music-show performance. Result is
// a categorical rank label; the resolver treats it as an opaque lookup key
// into the rank-effect table with a mid-tier fallback.
type JudgeResult struct {
	Scores           JudgeScores `json:"scores"`
	TotalScore       int         `json:"totalScore"`
	ChartProbability int         `json:"chartProbability"`
	Comment          string      `json:"comment"`
	Result           string      `json:"result"`
}
