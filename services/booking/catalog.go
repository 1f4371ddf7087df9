package booking

import "lumora/models"

// CatalogService exposes the agency's fixed service catalog.
type CatalogService interface {
	List() []models.Service
	ByID(id string) (models.Service, bool)
}

// StaticCatalog serves the catalog from memory; offerings change with
// deployments, not at runtime.
type StaticCatalog struct {
	services []models.Service
}

// NewStaticCatalog returns the agency's current offerings.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{services: []models.Service{
		{ID: "ai-consultation", Name: "AI Consultation", Price: 0, Duration: 60, Icon: "sparkles",
			Description: "One-hour consultation to map AI opportunities for your business."},
		{ID: "chatbot-development", Name: "Chatbot Development", Price: 2400, Duration: 60, Icon: "chatbubbles",
			Description: "Scoping session for a custom conversational assistant."},
		{ID: "ml-development", Name: "Machine Learning Development", Price: 4800, Duration: 60, Icon: "analytics",
			Description: "Kickoff for bespoke model development and integration."},
		{ID: "automation", Name: "Process Automation", Price: 1800, Duration: 60, Icon: "cog",
			Description: "Walkthrough of workflows worth automating with AI."},
		{ID: "web-development", Name: "AI-Powered Web Development", Price: 3200, Duration: 60, Icon: "globe",
			Description: "Planning session for an AI-enhanced web presence."},
	}}
}

func (c *StaticCatalog) List() []models.Service {
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *StaticCatalog) ByID(id string) (models.Service, bool) {
	for _, s := range c.services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}
