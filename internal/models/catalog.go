package models

const (
	ServiceStatusOnline  = "online"
	ServiceStatusPartial = "partial"
	ServiceStatusOffline = "offline"
)

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon,omitempty"`
	ServiceCount int    `json:"serviceCount,omitempty"`
}

type Service struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription,omitempty"`
	CategoryID       string   `json:"categoryId"`
	Status           string   `json:"status"`
	Views            int      `json:"views"`
	Fee              string   `json:"fee"`
	Agency           string   `json:"agency"`
	ProcessingTime   string   `json:"processingTime,omitempty"`
	Level            int      `json:"level,omitempty"`
	RelatedServices  []string `json:"relatedServices"`
}

// ServiceDetail is a service with its category and related services resolved.
type ServiceDetail struct {
	Service
	Category        *Category `json:"category"`
	RelatedServices []Service `json:"relatedServices"`
}

type NewsItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Dataset is the catalog loaded once at startup.
type Dataset struct {
	Categories []Category     `json:"categories"`
	Services   []Service      `json:"services"`
	News       []NewsItem     `json:"news"`
	Statistics map[string]any `json:"statistics"`
	Elections  map[string]any `json:"elections"`
}
