package api

import "context"

// DefaultMuscles lists the muscle names the server knows about.
// Unauthenticated.
func (c *Client) DefaultMuscles(ctx context.Context) ([]string, error) {
	var muscles []string
	if err := c.getJSON(ctx, "/muscles/defaults", "", &muscles); err != nil {
		return nil, err
	}
	return muscles, nil
}
