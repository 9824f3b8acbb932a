package app

import (
	"errors"
	"strconv"
	"strings"
)

// QuizOption is one selectable answer, keyed A-D.
type QuizOption struct {
	Key   string
	Label string
}

type QuizQuestion struct {
	ID      string
	Prompt  string
	Options []QuizOption
}

// Quiz is a lesson knowledge check: a question set with an answer key.
// Grading is purely local; completion never calls the network.
type Quiz struct {
	Title     string
	Questions []QuizQuestion
	answers   map[string]string
}

// Score counts correct selections in the given answer map.
func (q *Quiz) Score(selected map[string]string) int {
	score := 0
	for _, question := range q.Questions {
		if selected[question.ID] == q.answers[question.ID] {
			score++
		}
	}
	return score
}

// AllCorrect reports whether every question was answered correctly, which
// marks the activity complete.
func (q *Quiz) AllCorrect(selected map[string]string) bool {
	return q.Score(selected) == len(q.Questions)
}

// Correct reports whether the selection for one question matches the key.
func (q *Quiz) Correct(questionID, selection string) bool {
	return selection != "" && q.answers[questionID] == selection
}

// ValidateMissionLog rejects an empty mission report before any side
// effect.
func ValidateMissionLog(log string) error {
	if strings.TrimSpace(log) == "" {
		return errors.New("Please enter your mission report before saving.")
	}
	return nil
}

// ParseMinutesSpent parses the self-reported lesson minutes, requiring a
// positive whole number.
func ParseMinutesSpent(raw string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minutes <= 0 {
		return 0, errors.New("Please enter the minutes spent as a positive number.")
	}
	return minutes, nil
}

// RNPSQuiz is the Week 1 lesson knowledge check.
func RNPSQuiz() *Quiz {
	return &Quiz{
		Title: "Knowledge Check - Royal Navy Patrol Service",
		Questions: []QuizQuestion{
			{
				ID:     "q1",
				Prompt: "1. Who supported the creation of the RNPS silver badge that recognised six months of hazardous patrol work?",
				Options: []QuizOption{
					{Key: "A", Label: "King George VI alone"},
					{Key: "B", Label: "Winston Churchill as First Lord of the Admiralty"},
					{Key: "C", Label: "The Royal Air Force Board"},
					{Key: "D", Label: "Civilian lighthouse keepers"},
				},
			},
			{
				ID:     "q2",
				Prompt: "2. What does RNPS stand for?",
				Options: []QuizOption{
					{Key: "A", Label: "Royal Naval Protection Squadron"},
					{Key: "B", Label: "Royal Navy Patrol Service"},
					{Key: "C", Label: "Royal Northern Patrol Ships"},
					{Key: "D", Label: "Royal Naval Patrol Squadron"},
				},
			},
			{
				ID:     "q3",
				Prompt: "3. About how many ships and boats did the RNPS operate during the Second World War?",
				Options: []QuizOption{
					{Key: "A", Label: "About 600"},
					{Key: "B", Label: "About 1,500"},
					{Key: "C", Label: "About 6,000"},
					{Key: "D", Label: "About 20,000"},
				},
			},
			{
				ID:     "q4",
				Prompt: "4. Which of these types of boats were used by the RNPS?",
				Options: []QuizOption{
					{Key: "A", Label: "Submarines only"},
					{Key: "B", Label: "Aircraft carriers"},
					{Key: "C", Label: "Fishing trawlers and drifters"},
					{Key: "D", Label: "Cruise ships"},
				},
			},
			{
				ID:     "q5",
				Prompt: "5. What was the main job of the Royal Navy Patrol Service?",
				Options: []QuizOption{
					{Key: "A", Label: "Fighting large naval battles"},
					{Key: "B", Label: "Transporting aircraft"},
					{Key: "C", Label: "Keeping the seas safe"},
					{Key: "D", Label: "Exploring new sea routes"},
				},
			},
			{
				ID:     "q6",
				Prompt: "6. Why was minesweeping so dangerous?",
				Options: []QuizOption{
					{Key: "A", Label: "Mines were hard to see and could explode without warning"},
					{Key: "B", Label: "The ships were very fast"},
					{Key: "C", Label: "The sailors had no training"},
					{Key: "D", Label: "Mines could only be cleared at night"},
				},
			},
			{
				ID:     "q7",
				Prompt: "7. Which of these operations did the RNPS support?",
				Options: []QuizOption{
					{Key: "A", Label: "The Battle of Britain"},
					{Key: "B", Label: "Dunkirk"},
					{Key: "C", Label: "Pearl Harbour"},
					{Key: "D", Label: "El Alamein"},
				},
			},
			{
				ID:     "q8",
				Prompt: "8. Where was the RNPS based?",
				Options: []QuizOption{
					{Key: "A", Label: "Portsmouth"},
					{Key: "B", Label: "Plymouth"},
					{Key: "C", Label: "Lowestoft at HMS Sparrow's Nest"},
					{Key: "D", Label: "Scapa Flow"},
				},
			},
			{
				ID:     "q9",
				Prompt: "9. Why were some RNPS crews called 'Churchill's Pirates'?",
				Options: []QuizOption{
					{Key: "A", Label: "They stole enemy ships"},
					{Key: "B", Label: "They wore pirate flags"},
					{Key: "C", Label: "They carried out bold missions near enemy coasts"},
					{Key: "D", Label: "They sailed without orders"},
				},
			},
			{
				ID:     "q10",
				Prompt: "10. Why was the RNPS nicknamed 'Harry Tate's Navy'?",
				Options: []QuizOption{
					{Key: "A", Label: "It was badly organised"},
					{Key: "B", Label: "It used only old ships"},
					{Key: "C", Label: "It had a mixed and unusual fleet of boats"},
					{Key: "D", Label: "It was based in London"},
				},
			},
			{
				ID:     "q11",
				Prompt: "11. Why were fishermen well suited to RNPS service?",
				Options: []QuizOption{
					{Key: "A", Label: "They were used to sailing large warships"},
					{Key: "B", Label: "They already knew the sea and tough conditions"},
					{Key: "C", Label: "They had flown aircraft before"},
					{Key: "D", Label: "They had never worked at sea"},
				},
			},
			{
				ID:     "q12",
				Prompt: "12. Which officer from the RNPS received the Victoria Cross during the Norwegian campaign?",
				Options: []QuizOption{
					{Key: "A", Label: "Admiral Bertram Ramsay"},
					{Key: "B", Label: "Lieut. Richard Been Stannard"},
					{Key: "C", Label: "Commodore Henry Harwood"},
					{Key: "D", Label: "Captain Edward Kennedy"},
				},
			},
		},
		answers: map[string]string{
			"q1": "B", "q2": "B", "q3": "C", "q4": "C", "q5": "C", "q6": "A",
			"q7": "B", "q8": "C", "q9": "C", "q10": "C", "q11": "B", "q12": "B",
		},
	}
}
