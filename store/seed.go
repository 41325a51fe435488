package store

import "time"

// Seed populates the store with demo conversations so the inbox is usable
// before any backend is wired up. Idempotent-ish: it simply appends, so run
// it against a fresh database.
func (s *Store) Seed() error {
	now := time.Now()

	type seedMsg struct {
		author string
		body   string
		age    time.Duration
		read   bool
	}
	seeds := []struct {
		name, email, subject, status string
		msgs                         []seedMsg
	}{
		{
			"Maya Lindqvist", "maya@northwindcycles.se", "Refund for order #4821", StatusOpen,
			[]seedMsg{
				{AuthorCustomer, "Hi — I returned the panniers two weeks ago and still haven't seen a refund. Order **#4821**.", 26 * time.Hour, true},
				{AuthorAgent, "Sorry about that, Maya. I can see the return arrived Tuesday; I've escalated to billing.", 22 * time.Hour, true},
				{AuthorCustomer, "Any update? The card statement closes tomorrow.", 30 * time.Minute, false},
			},
		},
		{
			"Deshi Okafor", "d.okafor@brightmail.io", "API rate limits on the starter plan", StatusOpen,
			[]seedMsg{
				{AuthorCustomer, "We keep hitting `429 Too Many Requests` around 9am UTC. Is the starter plan limit documented anywhere?", 3 * time.Hour, false},
			},
		},
		{
			"Rosa Alvarez", "rosa@tallergrafico.mx", "Invoice address change", StatusSnoozed,
			[]seedMsg{
				{AuthorCustomer, "Could you update our billing address before the next invoice? We moved offices.", 4 * 24 * time.Hour, true},
				{AuthorAgent, "Done — snoozing this until the invoice run on the 1st to confirm it picked up the change.", 4 * 24 * time.Hour, true},
			},
		},
		{
			"Tom Whitfield", "tom.w@ferrypost.co.uk", "Can't log in after password reset", StatusClosed,
			[]seedMsg{
				{AuthorCustomer, "Reset my password but the new one is rejected.", 9 * 24 * time.Hour, true},
				{AuthorAgent, "There was a stale session on your account; I've cleared it. Try again?", 9 * 24 * time.Hour, true},
				{AuthorCustomer, "Working now, thanks!", 8 * 24 * time.Hour, true},
			},
		},
	}

	for _, c := range seeds {
		id, err := s.AddConversation(c.name, c.email, c.subject, c.status, now.Add(-c.msgs[0].age))
		if err != nil {
			return err
		}
		for _, m := range c.msgs {
			if err := s.AddMessage(id, m.author, m.body, now.Add(-m.age), m.read); err != nil {
				return err
			}
		}
	}
	return nil
}
