package hume

// TimeInterval is the audio segment a prediction covers, in seconds.
type TimeInterval struct {
	Begin float64 `json:"begin"`
	End   float64 `json:"end"`
}

// EmotionItem is one (name, score) pair of a prosody prediction.
// Scores are model confidences in 0-1.
type EmotionItem struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Prediction is the prosody model's output for one speech segment.
type Prediction struct {
	Time     TimeInterval  `json:"time"`
	Emotions []EmotionItem `json:"emotions"`
}

// startJobResponse is the response to a job submission.
type startJobResponse struct {
	JobID string `json:"job_id"`
}

// jobStatusResponse is the response to a job status poll.
type jobStatusResponse struct {
	State struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"state"`
}

// Job states reported by the batch API.
const (
	statusQueued     = "QUEUED"
	statusInProgress = "IN_PROGRESS"
	statusCompleted  = "COMPLETED"
	statusFailed     = "FAILED"
)

// predictionsResponse mirrors the nested batch predictions payload down to
// the prosody predictions we care about.
type predictionsResponse []struct {
	Results struct {
		Predictions []struct {
			Models struct {
				Prosody struct {
					GroupedPredictions []struct {
						Predictions []Prediction `json:"predictions"`
					} `json:"grouped_predictions"`
				} `json:"prosody"`
			} `json:"models"`
		} `json:"predictions"`
	} `json:"results"`
}

// flatten collects all prosody predictions across files and speaker groups.
func (r predictionsResponse) flatten() []Prediction {
	var out []Prediction
	for _, file := range r {
		for _, filePred := range file.Results.Predictions {
			for _, group := range filePred.Models.Prosody.GroupedPredictions {
				out = append(out, group.Predictions...)
			}
		}
	}
	return out
}
