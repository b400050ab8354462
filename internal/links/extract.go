package links

import "adfilter/internal/domain"

// Extract pulls every link candidate out of a message: keyboard buttons row
// by row first, then text entities in body order. Only URL-kind buttons and
// entities contribute; nothing is deduplicated.
func Extract(msg *domain.Message) []domain.LinkCandidate {
	if msg == nil {
		return nil
	}

	var candidates []domain.LinkCandidate

	if msg.Keyboard != nil {
		for _, row := range msg.Keyboard.Rows {
			for _, btn := range row {
				if btn.Kind != domain.ButtonURL {
					continue
				}
				candidates = append(candidates, domain.LinkCandidate{
					Label: btn.Text,
					URL:   btn.URL,
				})
			}
		}
	}

	for _, ent := range msg.Entities {
		if ent.Kind != domain.EntityURL {
			continue
		}
		candidates = append(candidates, domain.LinkCandidate{
			Label: ent.Label,
			URL:   ent.URL,
		})
	}

	return candidates
}
