package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"feasibility-workers/internal/common/errors"
	"feasibility-workers/pkg/registry"
)

// DecodeVariables validates the job variables against the activity's input
// schema, then unmarshals them into out. A nil activity skips validation.
func DecodeVariables(job entities.Job, activity *registry.Activity, out interface{}) error {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("parse variables: %v", err))
	}

	if activity != nil {
		result, err := activity.ValidateInput(vars)
		if err != nil {
			return errors.NewInputValidationFailedError(err.Error())
		}
		if !result.Valid {
			return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
		}
	}

	if err := json.Unmarshal([]byte(job.Variables), out); err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}

// CompleteJob sends the output object as the job's result variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}

// LookupActivity finds a task type in the embedded registry.
func LookupActivity(taskType string) (*registry.Activity, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	activity, ok := reg.Find(taskType)
	if !ok {
		return nil, fmt.Errorf("task type %s is not registered", taskType)
	}
	return activity, nil
}
