package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskAnalysisRefresh re-runs the analysis pipeline for a cached URL.
const TaskAnalysisRefresh = "analysis:refresh"

// TaskVerdictSeed bulk-loads a YAML domain verdict list.
const TaskVerdictSeed = "verdicts:seed"

type AnalysisRefreshPayload struct {
	URL string `json:"url"`
}

type VerdictSeedPayload struct {
	Path string `json:"path"`
}

func NewAnalysisRefreshTask(payload AnalysisRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalysisRefresh, data), nil
}

func ParseAnalysisRefreshPayload(task *asynq.Task) (AnalysisRefreshPayload, error) {
	var payload AnalysisRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AnalysisRefreshPayload{}, err
	}
	return payload, nil
}

func NewVerdictSeedTask(payload VerdictSeedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerdictSeed, data), nil
}

func ParseVerdictSeedPayload(task *asynq.Task) (VerdictSeedPayload, error) {
	var payload VerdictSeedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return VerdictSeedPayload{}, err
	}
	return payload, nil
}
