package publisher

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/savaki/asset-publisher/internal/errors"
)

// DefaultOutputFile is written to the working directory when no other output is given
const DefaultOutputFile = "mainConfiguration.json"

// Parameters maps a CloudFormation parameter name to its value. A later
// assignment to the same name replaces the earlier one.
type Parameters map[string]string

// TemplateConfiguration is the CloudFormation template configuration file
// consumed by the deploy stage
type TemplateConfiguration struct {
	Parameters Parameters `json:"Parameters"`
}

// WriteConfiguration writes cfg to path in a single write
func WriteConfiguration(fs billy.Filesystem, path string, cfg *TemplateConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrWriteOutput, err)
	}
	if err := util.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrWriteOutput, path, err)
	}
	return nil
}

// CloudFormationParameters converts params into a CloudFormation parameter
// list sorted by key
func CloudFormationParameters(params Parameters) []types.Parameter {
	results := make([]types.Parameter, 0, len(params))
	for _, k := range slices.Sorted(maps.Keys(params)) {
		results = append(results, types.Parameter{
			ParameterKey:   aws.String(k),
			ParameterValue: aws.String(params[k]),
		})
	}
	return results
}

// WriteParameters writes params to path as a CloudFormation parameter list,
// the format accepted by `aws cloudformation create-stack --parameters file://...`.
// Unset SDK fields are left out of the document.
func WriteParameters(fs billy.Filesystem, path string, params Parameters) error {
	type parameter struct {
		ParameterKey   string `json:"ParameterKey"`
		ParameterValue string `json:"ParameterValue"`
	}

	list := make([]parameter, 0, len(params))
	for _, p := range CloudFormationParameters(params) {
		list = append(list, parameter{
			ParameterKey:   aws.ToString(p.ParameterKey),
			ParameterValue: aws.ToString(p.ParameterValue),
		})
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrWriteOutput, err)
	}
	if err := util.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrWriteOutput, path, err)
	}
	return nil
}
