package ai

// PromptPair is the system/user message pair sent upstream for one request.
type PromptPair struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Compile builds the prompt pair for taskType. Missing fields never fail;
// only an unregistered task type does.
func Compile(taskType TaskType, fields Fields) (PromptPair, error) {
	if _, err := ParseTaskType(string(taskType)); err != nil {
		return PromptPair{}, err
	}
	r := registry[taskType]
	if fields == nil {
		fields = Fields{}
	}
	payload := r.decode(fields)
	return PromptPair{
		System: r.system,
		User:   payload.UserPrompt(),
	}, nil
}

