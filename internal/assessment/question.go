package assessment

// QuestionID is the fixed two-digit code a symptom question is keyed by,
// both in the wizard and on the wire to the prediction service.
type QuestionID string

type Question struct {
	ID   QuestionID
	Text string
}

// Bank is the immutable ordered set of symptom questions for one variant.
type Bank struct {
	questions []Question
	byID      map[QuestionID]Question
}

func NewBank(questions ...Question) *Bank {
	b := &Bank{
		questions: make([]Question, len(questions)),
		byID:      make(map[QuestionID]Question, len(questions)),
	}
	copy(b.questions, questions)
	for _, q := range questions {
		b.byID[q.ID] = q
	}
	return b
}

func (b *Bank) Len() int {
	return len(b.questions)
}

func (b *Bank) Contains(id QuestionID) bool {
	_, ok := b.byID[id]
	return ok
}

// Questions returns the questions in display order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Bank) IDs() []QuestionID {
	out := make([]QuestionID, 0, len(b.questions))
	for _, q := range b.questions {
		out = append(out, q.ID)
	}
	return out
}
