package ai

// TaskType selects the prompt template and payload shape of a request.
type TaskType string

const (
	TaskDoubtAnswer       TaskType = "doubt-answer"
	TaskMentorMatch       TaskType = "mentor-match"
	TaskSessionSummary    TaskType = "session-summary"
	TaskCareerRoadmap     TaskType = "career-roadmap"
	TaskContentModeration TaskType = "content-moderation"
	TaskCertificateText   TaskType = "certificate-text"
)

// rule builds the prompt pair for one task type. Decode must be pure.
type rule struct {
	system string
	decode func(Fields) Payload
}

// registry is fixed at init and never mutated.
var registry = map[TaskType]rule{
	TaskDoubtAnswer:       {system: doubtAnswerSystemPrompt, decode: decodeDoubtAnswer},
	TaskMentorMatch:       {system: mentorMatchSystemPrompt, decode: decodeMentorMatch},
	TaskSessionSummary:    {system: sessionSummarySystemPrompt, decode: decodeSessionSummary},
	TaskCareerRoadmap:     {system: careerRoadmapSystemPrompt, decode: decodeCareerRoadmap},
	TaskContentModeration: {system: contentModerationSystemPrompt, decode: decodeContentModeration},
	TaskCertificateText:   {system: certificateTextSystemPrompt, decode: decodeCertificateText},
}

// TaskTypes returns the registered task types in a stable order.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskDoubtAnswer,
		TaskMentorMatch,
		TaskSessionSummary,
		TaskCareerRoadmap,
		TaskContentModeration,
		TaskCertificateText,
	}
}

// ParseTaskType checks s against the registry. Anything unregistered,
// including the empty string, is an UnknownTaskType error.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(s)
	if !t.Valid() {
		return "", newError(KindUnknownTaskType, "Unknown AI task type: "+s, nil)
	}
	return t, nil
}

func (t TaskType) Valid() bool {
	_, ok := registry[t]
	return ok
}

func (t TaskType) String() string { return string(t) }
