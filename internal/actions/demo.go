package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
)

// Replace foo and bar with your own actions.

func fooAction(deps Deps) dispatch.ActionSpec {
	return dispatch.ActionSpec{
		Name:    "foo",
		Summary: "Demo 'foo' action",
		Handler: dispatch.HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			fmt.Fprintln(deps.Stdout, "performing foo")
			return nil, nil
		}),
	}
}

func barAction(deps Deps) dispatch.ActionSpec {
	return dispatch.ActionSpec{
		Name:    "bar",
		Summary: "Demo 'bar' action",
		Flags: func(fs *pflag.FlagSet) {
			fs.StringP("baz", "b", "", "demo 'baz' option")
		},
		Handler: dispatch.HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			baz, err := cfg.String("baz")
			if errors.Is(err, model.ErrMissingKey) {
				return nil, model.Usage("bar requires the baz option (--baz)")
			}
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(deps.Stdout, "performing bar with baz %s\n", baz)
			return baz, nil
		}),
	}
}
