package api

import "context"

// SettingsAPI covers restaurant-wide settings.
type SettingsAPI struct {
	c *Client
}

func (c *Client) Settings() *SettingsAPI { return &SettingsAPI{c: c} }

type Settings struct {
	RestaurantName string  `json:"restaurantName"`
	Currency       string  `json:"currency"`
	TaxRate        float64 `json:"taxRate"`
	Locale         string  `json:"locale"`
}

func (a *SettingsAPI) Get(ctx context.Context) (*Settings, error) {
	var out Settings
	if err := a.c.get(ctx, "/settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SettingsAPI) Update(ctx context.Context, s Settings) (*Settings, error) {
	var out Settings
	if err := a.c.put(ctx, "/settings", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
