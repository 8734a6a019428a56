package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to a shelf server.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Debug("GET request", "path", path)
	resp, err := r.apiClient(cmd).Get(ctx, path)
	return r.writeAPIResponse(resp, err)
}

// APIPost makes a direct POST request with a JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	data := cmd.String("data")
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}
	if !json.Valid([]byte(data)) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	r.logger.Debug("POST request", "path", path)
	resp, err := r.apiClient(cmd).Post(ctx, path, []byte(data))
	return r.writeAPIResponse(resp, err)
}

// APIDelete makes a direct DELETE request.
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Debug("DELETE request", "path", path)
	resp, err := r.apiClient(cmd).Delete(ctx, path)
	return r.writeAPIResponse(resp, err)
}

func (r *Runner) apiClient(cmd *cli.Command) *services.APIService {
	if r.api != nil {
		return r.api
	}
	r.api = services.NewAPIService(cmd.String("url"), nil)
	return r.api
}

// writeAPIResponse prints the body, pretty-printing JSON, and turns non-2xx statuses into errors.
func (r *Runner) writeAPIResponse(resp *services.APIResponse, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.IsJSON {
		if err := r.writeJSON(resp.JSONData, true); err != nil {
			return err
		}
		r.writePlain("\n")
	} else {
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	return nil
}
