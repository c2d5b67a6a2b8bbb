package models

import "time"

type Subscription struct {
	SubscriptionID string    `json:"subscriptionId"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Name           string    `json:"name"`
	Province       string    `json:"province"`
	District       string    `json:"district"`
	Ward           string    `json:"ward"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
}

type SubscriptionInput struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

type Feedback struct {
	TicketCode   string    `json:"ticketCode"`
	Type         string    `json:"type"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Anonymous    bool      `json:"anonymous"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type FeedbackInput struct {
	Type         string `json:"type"`
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Anonymous    bool   `json:"anonymous"`
}

type VoterCheckInput struct {
	IDNumber string `json:"idNumber"`
	FullName string `json:"fullName"`
	// BirthYear arrives as a number or a string from different forms.
	BirthYear FlexInt `json:"birthYear"`
}

type PollingStation struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Ward         string `json:"ward"`
	District     string `json:"district"`
	Province     string `json:"province"`
	OpenTime     string `json:"openTime,omitempty"`
	CloseTime    string `json:"closeTime,omitempty"`
	Capacity     int    `json:"capacity,omitempty"`
	Phone        string `json:"phone,omitempty"`
	VoterNumber  int    `json:"voterNumber,omitempty"`
	Constituency string `json:"constituency,omitempty"`
}

type Voter struct {
	IDNumber       string         `json:"idNumber"`
	FullName       string         `json:"fullName"`
	BirthYear      int            `json:"birthYear"`
	Registered     bool           `json:"registered"`
	PollingStation PollingStation `json:"pollingStation"`
}

type VoterCheckResult struct {
	Registered bool   `json:"registered"`
	Voter      *Voter `json:"voter,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type ElectionNews struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	Category  string `json:"category"`
	Important bool   `json:"important"`
}

type Candidate struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	BirthYear    int      `json:"birthYear"`
	Gender       string   `json:"gender"`
	Ethnicity    string   `json:"ethnicity"`
	Religion     string   `json:"religion"`
	Education    string   `json:"education"`
	Occupation   string   `json:"occupation"`
	Position     string   `json:"position"`
	Constituency string   `json:"constituency"`
	Party        string   `json:"party"`
	Nominations  []string `json:"nominations"`
	Bio          string   `json:"bio"`
}

type FAQ struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Views    int    `json:"views"`
}

type FAQCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CalendarEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	EndDate     string `json:"endDate,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Time        string `json:"time,omitempty"`
}

// ElectionData is the embedded demo dataset of the election section.
type ElectionData struct {
	ElectionDate    string           `json:"electionDate"`
	Voters          []Voter          `json:"voters"`
	PollingStations []PollingStation `json:"pollingStations"`
	News            []ElectionNews   `json:"news"`
	Candidates      []Candidate      `json:"candidates"`
	Statistics      map[string]any   `json:"statistics"`
	FAQ             []FAQ            `json:"faq"`
	FAQCategories   []FAQCategory    `json:"faqCategories"`
	Calendar        []CalendarEvent  `json:"calendar"`
}
