package scenario

import (
	"fmt"
	"regexp"

	"github.com/blogapp/e2e/internal/models"
)

// Scenario is one independent test case: setup, actions and assertions
type Scenario struct {
	Group string
	Name  string
	// Users are created through the fixture API after the reset.
	Users []models.User
	// LoginAs, when set, is logged in through the UI before Steps run.
	LoginAs *models.User
	Steps   []Step
}

// ID returns the scenario's unique "Group/Name" identifier
func (s Scenario) ID() string {
	if s.Group == "" {
		return s.Name
	}
	return s.Group + "/" + s.Name
}

// Filter returns the scenarios whose ID matches pattern. An empty pattern matches all.
func Filter(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario pattern %q: %w", pattern, err)
	}

	var matched []Scenario
	for _, sc := range scenarios {
		if re.MatchString(sc.ID()) {
			matched = append(matched, sc)
		}
	}
	return matched, nil
}

// Find returns the scenario with the given ID
func Find(scenarios []Scenario, id string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.ID() == id {
			return sc, true
		}
	}
	return Scenario{}, false
}
