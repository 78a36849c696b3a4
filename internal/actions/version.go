package actions

import (
	"context"
	"fmt"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
)

func versionAction(deps Deps) dispatch.ActionSpec {
	return dispatch.ActionSpec{
		Name:    "version",
		Summary: "Display version information",
		Handler: dispatch.HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			if len(args) > 0 {
				return nil, model.Usage("version takes no arguments")
			}
			v := fmt.Sprintf("%s-%s", deps.Name, deps.Version)
			if _, err := fmt.Fprintln(deps.Stdout, v); err != nil {
				return nil, fmt.Errorf("failed to write version: %w", err)
			}
			return v, nil
		}),
	}
}
