package email

import "context"

// SendWelcomeEmail greets a newly registered member.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name, membershipType string) error {
	data := map[string]string{
		"MemberName":     name,
		"MembershipType": membershipType,
	}

	return c.SendEmail(ctx, to, "Welcome to the Fitness Tracker!", TemplateWelcome, data)
}
