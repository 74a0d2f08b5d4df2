// Package prompts holds every prompt sent to the text-generation collaborator and the
// hardcoded fallback scenario used when generation fails.
package prompts

import (
	"fmt"
	"github.com/myrjola/whodunit/internal/models"
	"strings"
)

// ScenarioGeneration asks the model for a complete mystery as a strict JSON object.
const ScenarioGeneration = `You are the scenario writer for a deduction game. Generate an intriguing murder mystery scenario.

Respond with JSON in exactly this shape:

{
    "title": "title of the case",
    "scenario": "background and situation of the case (200 characters or less)",
    "victim": "name of the victim",
    "location": "where the crime took place",
    "time": "when the crime took place",
    "culprit": "name of the actual culprit",
    "npcs": [
        {
            "name": "NPC name",
            "role": "role (e.g. suspect, witness)",
            "personality": "personality description",
            "secret": "the truth or lie they are hiding",
            "alibi": "their alibi",
            "relationship": "relationship to the victim"
        }
    ],
    "key_evidence": ["evidence 1", "evidence 2", "evidence 3"]
}

Important: respond only with valid JSON and nothing else.
There must be exactly 3 NPCs and the culprit must be one of them.
Every NPC needs their own secret and motive; even innocent NPCs should have suspicious behavior or secrets.`

// QuestionEvaluation builds the rubric prompt that rates a single player question.
// The rubric awards logic 30, specificity 30 and efficiency 40 points, reported as one
// combined score from 1 to 100.
func QuestionEvaluation(question, scenarioContext string) string {
	return fmt.Sprintf(`You are the question quality judge for a deduction game.

Case information:
%s

The player's question: %q

Rate this question against the following criteria:
1. Logic (30 points): is the question logical and does it aid deduction?
2. Specificity (30 points): is the question concrete and clear?
3. Efficiency (40 points): can the question directly contribute to solving the case?

Score out of 100 points in total and respond only with JSON in this shape:
{
    "score": number (1-100),
    "reasoning": "reason for the rating (one sentence)"
}

Important: respond only with valid JSON.`, scenarioContext, question)
}

// NPCResponse builds the role-play prompt for an interrogated NPC. The no-leak policy
// lives entirely in this prompt; the game trusts the model to honor it.
func NPCResponse(question string, npc models.NPC, scenario *models.Scenario, history string) string {
	return fmt.Sprintf(`You are %q, an NPC in a deduction game.

Case information:
- Title: %s
- Situation: %s
- Victim: %s
- Location: %s
- Time: %s

Your information:
- Name: %s
- Role: %s
- Personality: %s
- Secret: %s
- Alibi: %s
- Relationship to the victim: %s

%s

The investigator's question: %q

Role-play rules:
1. Answer in line with your personality
2. Do not reveal your secret directly (but you may hint at it for sharp questions)
3. Answer in natural, realistic conversational language
4. Keep your answer under 100 characters
5. You may be defensive or evasive
6. Mix truth and deception in your answers

Write only the answer (no extra commentary):`,
		npc.Name,
		scenario.Title,
		scenario.Narrative,
		scenario.Victim,
		scenario.Location,
		scenario.Time,
		npc.Name,
		npc.Role,
		npc.Personality,
		npc.Secret,
		npc.Alibi,
		npc.Relationship,
		history,
		question)
}

// HintGeneration builds the prompt for an indirect hint that must not name the culprit.
func HintGeneration(narrative, culprit string) string {
	return fmt.Sprintf(`Case information:
%s
Culprit: %s

Write a hint for the player. Do not reveal the culprit directly; give an indirect hint that points the deduction in the right direction.
Keep it under 50 characters.`, narrative, culprit)
}

// historyWindow bounds the prompt size: the NPC only remembers this many of the most
// recent question/answer pairs.
const historyWindow = 5

// ConversationHistory renders the most recent question/answer pairs of a session for
// inclusion in the NPC role-play prompt. Older context is intentionally forgotten.
func ConversationHistory(records []models.QuestionRecord) string {
	if len(records) == 0 {
		return ""
	}
	if len(records) > historyWindow {
		records = records[len(records)-historyWindow:]
	}
	var b strings.Builder
	b.WriteString("\nPrevious questions:\n")
	for i, r := range records {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, r.Question, r.Answer)
	}
	return b.String()
}

// DefaultScenario returns the hardcoded fallback mystery used when scenario generation
// fails all attempts. Returning a fresh copy keeps the shared template immutable.
func DefaultScenario() models.Scenario {
	return models.Scenario{
		Title:     "The Manor's Secret",
		Narrative: "A famous businessman has been murdered in his own manor. Three people were in the manor at the time of the crime.",
		Victim:    "Edward Blackwood",
		Location:  "Blackwood Manor, Ashford Hills",
		Time:      "11 PM, October 15th",
		Culprit:   "Clara Voss",
		NPCs: []models.NPC{
			{
				Name:         "Clara Voss",
				Role:         "suspect",
				Personality:  "cold and calculating",
				Secret:       "The victim discovered evidence of her embezzlement and she killed him to bury it",
				Alibi:        "Claims she was working in the study",
				Relationship: "His personal secretary for ten years",
			},
			{
				Name:         "Daniel Blackwood",
				Role:         "suspect",
				Personality:  "emotional and impulsive",
				Secret:       "Had a bitter argument with his father over the inheritance",
				Alibi:        "Claims he was listening to music in his room",
				Relationship: "The victim's son",
			},
			{
				Name:         "Marta Reyes",
				Role:         "witness",
				Personality:  "timid but observant",
				Secret:       "Saw Clara enter the study from the kitchen but is too afraid to say so",
				Alibi:        "Was preparing the next day's meals in the kitchen",
				Relationship: "The manor's cook for five years",
			},
		},
		KeyEvidence: []string{
			"Fingerprints found on the study door handle",
			"Embezzlement records left open on the victim's laptop",
			"A shadow in the hallway caught on CCTV",
		},
	}
}
