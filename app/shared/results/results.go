package results

// OperationResult carries the business outcome of a service operation.
// Exactly one of Success or Failure is set on a normal return; Error is
// reserved for infrastructure problems (the caller decides whether to retry).
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// HandlerResult pairs an outcome payload with the topic it publishes to.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// MapToHandlerResults routes the result to the success or failure topic.
// A result with neither payload produces no messages.
func (r OperationResult) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	var out []HandlerResult
	if r.Success != nil {
		out = append(out, HandlerResult{Topic: successTopic, Payload: r.Success})
	}
	if r.Failure != nil {
		out = append(out, HandlerResult{Topic: failureTopic, Payload: r.Failure})
	}
	return out
}
