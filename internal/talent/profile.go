package talent

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ProfileSummary is the denormalized profile data attached to a search result.
type ProfileSummary struct {
	ProfileID string `json:"profile_id" mapstructure:"profile_id"`
	Contact   struct {
		Name     string `json:"name,omitempty"`
		Email    string `json:"email,omitempty"`
		Location string `json:"location,omitempty"`
	} `json:"contact_info,omitempty" mapstructure:"contact_info"`
	Summary string   `json:"summary,omitempty"`
	Skills  []string `json:"skills,omitempty"`
}

// Profile is a full profile record from the backend detail endpoint.
type Profile struct {
	ProfileID string `json:"profile_id" mapstructure:"profile_id"`
	Contact   struct {
		Name        string `json:"name,omitempty"`
		Email       string `json:"email,omitempty"`
		Phone       string `json:"phone,omitempty"`
		LinkedinURL string `json:"linkedin_url,omitempty" mapstructure:"linkedin_url"`
		GithubURL   string `json:"github_url,omitempty" mapstructure:"github_url"`
		Location    string `json:"location,omitempty"`
	} `json:"contact_info,omitempty" mapstructure:"contact_info"`
	Summary        string `json:"summary,omitempty"`
	WorkExperience []struct {
		Company          string   `json:"company,omitempty"`
		Role             string   `json:"role,omitempty"`
		StartDate        string   `json:"start_date,omitempty" mapstructure:"start_date"`
		EndDate          string   `json:"end_date,omitempty" mapstructure:"end_date"`
		Location         string   `json:"location,omitempty"`
		Responsibilities []string `json:"responsibilities,omitempty"`
		Description      string   `json:"description,omitempty"`
	} `json:"work_experience,omitempty" mapstructure:"work_experience"`
	Education []struct {
		Institution  string `json:"institution,omitempty"`
		Degree       string `json:"degree,omitempty"`
		FieldOfStudy string `json:"field_of_study,omitempty" mapstructure:"field_of_study"`
		StartDate    string `json:"start_date,omitempty" mapstructure:"start_date"`
		EndDate      string `json:"end_date,omitempty" mapstructure:"end_date"`
	} `json:"education,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty" mapstructure:"created_at"`

	// Raw keeps everything the backend sent, including fields this client
	// does not model yet.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

// Name returns the best display name for the profile.
func (p *ProfileSummary) Name() string {
	if p.Contact.Name != "" {
		return p.Contact.Name
	}

	return p.ProfileID
}

func (c *Client) GetProfile(id string) (*Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile id is required")
	}

	apiURL := fmt.Sprintf("%s/profiles/%s", c.APIURL, id)

	var raw map[string]any
	if err := c.getJSON(apiURL, &raw); err != nil {
		return nil, err
	}

	if raw == nil {
		raw = make(map[string]any)
	}

	var profile Profile
	cfg := &mapstructure.DecoderConfig{
		Result:  &profile,
		TagName: "mapstructure",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	profile.Raw = raw

	return &profile, nil
}
