package domain

// Gender of a trainee. Candidate generation picks one of the two at random.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Stats are the performance attributes of a trainee, each 0-100.
type Stats struct {
	Dance     int `json:"dance"`
	Vocal     int `json:"vocal"`
	Visual    int `json:"visual"`
	Potential int `json:"potential"`
	Charisma  int `json:"charisma"`
}

// Risk holds the independent trouble probabilities of a trainee, each 0-100.
// High risks feed the crisis-event trigger roll after every comeback.
type Risk struct {
	Scandal  int `json:"scandal"`
	Romance  int `json:"romance"`
	Conflict int `json:"conflict"`
}

// Idol is a recruitable performer. Instances are immutable after creation;
// any change replaces the whole object.
type Idol struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`
	PortraitURL string `json:"imageUrl"`
	Stats       Stats  `json:"stats"`
	Risk        Risk   `json:"risk"`
	Analysis    string `json:"analysis"`
	IsActive    bool   `json:"isActive"`
}
