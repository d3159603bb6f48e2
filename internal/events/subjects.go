package events

const (
	StreamName   = "BLEND_WEIGHT_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectWeightsComputed(jobID string) string { return "blend.weights." + jobID + ".computed" }
func SubjectWeightsFailed(jobID string) string   { return "blend.weights." + jobID + ".failed" }
