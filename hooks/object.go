package hooks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/engine/app"
	"github.com/akyaiy/godoit/internal/engine/config"
)

// ParseID parses a positive object id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid object id %q", s)
	}
	return id, nil
}

// constOrID keeps i-doit constants as strings and turns numeric ids into numbers.
func constOrID(s string) any {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ObjectCreate(objType, title string, flags *config.ObjectCreate) RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		opts := &idoit.ObjectCreateOptions{
			Category:    optional(flags.Category),
			Purpose:     optional(flags.Purpose),
			Description: optional(flags.Description),
		}
		if flags.CMDBStatus != "" {
			opts.CMDBStatus = constOrID(flags.CMDBStatus)
		}
		res, err := x.Client.ObjectCreate(ctx, constOrID(objType), title, opts)
		if err != nil {
			return err
		}
		return x.Out.Created(res)
	}
}

func ObjectRead(id int64) RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		o, err := x.Client.ObjectRead(ctx, id)
		if err != nil {
			return err
		}
		return x.Out.Object(o)
	}
}

func ObjectUpdate(id int64, title string) RunFunc {
	return statusHook(func(ctx context.Context, c *idoit.Client) (*idoit.StatusResult, error) {
		return c.ObjectUpdate(ctx, id, title)
	})
}

func ObjectDelete(id int64, status string) RunFunc {
	return statusHook(func(ctx context.Context, c *idoit.Client) (*idoit.StatusResult, error) {
		return c.ObjectDelete(ctx, id, status)
	})
}

// ObjectLifecycle maps a subcommand name to its client method.
var ObjectLifecycle = map[string]func(c *idoit.Client, ctx context.Context, id int64) (*idoit.StatusResult, error){
	"recycle":  (*idoit.Client).ObjectRecycle,
	"archive":  (*idoit.Client).ObjectArchive,
	"purge":    (*idoit.Client).ObjectPurge,
	"template": (*idoit.Client).ObjectMarkAsTemplate,
}

// ObjectChangeStatus runs the lifecycle subcommand named op.
func ObjectChangeStatus(op string, id int64) RunFunc {
	method, ok := ObjectLifecycle[op]
	if !ok {
		return func(context.Context, *corestate.CoreState, *app.AppX) error {
			return fmt.Errorf("unknown object operation %q", op)
		}
	}
	return statusHook(func(ctx context.Context, c *idoit.Client) (*idoit.StatusResult, error) {
		return method(c, ctx, id)
	})
}

func statusHook(fn func(ctx context.Context, c *idoit.Client) (*idoit.StatusResult, error)) RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		res, err := fn(ctx, x.Client)
		if err != nil {
			return err
		}
		return x.Out.Status(res)
	}
}
