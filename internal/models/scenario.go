package models

// Scenario is the immutable mystery definition for a given day. It is generated once per
// calendar day, shared read-only across every session started that day, and never mutated.
type Scenario struct {
	Title       string   `json:"title"`
	Narrative   string   `json:"scenario"`
	Victim      string   `json:"victim"`
	Location    string   `json:"location"`
	Time        string   `json:"time"`
	Culprit     string   `json:"culprit"`
	NPCs        []NPC    `json:"npcs"`
	KeyEvidence []string `json:"key_evidence"`
}

// NPC is a suspect or witness with a hidden secret and an alibi. The player interrogates
// NPCs by exact name, case-sensitive.
type NPC struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Personality  string `json:"personality"`
	Secret       string `json:"secret"`
	Alibi        string `json:"alibi"`
	Relationship string `json:"relationship"`
}

// FindNPC looks up an NPC by exact name match. Returns nil if no NPC with that name exists.
func (s *Scenario) FindNPC(name string) *NPC {
	for i := range s.NPCs {
		if s.NPCs[i].Name == name {
			return &s.NPCs[i]
		}
	}
	return nil
}

// PublicNPC is the player-visible subset of an NPC. Secrets and alibis stay hidden.
type PublicNPC struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Personality  string `json:"personality"`
	Relationship string `json:"relationship"`
}

// PublicScenario is the player-visible subset of a Scenario. The culprit and NPC secrets
// are never included.
type PublicScenario struct {
	Title       string      `json:"title"`
	Narrative   string      `json:"scenario"`
	Victim      string      `json:"victim"`
	Location    string      `json:"location"`
	Time        string      `json:"time"`
	NPCs        []PublicNPC `json:"npcs"`
	KeyEvidence []string    `json:"key_evidence"`
}

// Public strips the culprit and all NPC secrets from the scenario for exposure to the player.
func (s *Scenario) Public() PublicScenario {
	npcs := make([]PublicNPC, len(s.NPCs))
	for i, npc := range s.NPCs {
		npcs[i] = PublicNPC{
			Name:         npc.Name,
			Role:         npc.Role,
			Personality:  npc.Personality,
			Relationship: npc.Relationship,
		}
	}
	return PublicScenario{
		Title:       s.Title,
		Narrative:   s.Narrative,
		Victim:      s.Victim,
		Location:    s.Location,
		Time:        s.Time,
		NPCs:        npcs,
		KeyEvidence: s.KeyEvidence,
	}
}
