// Package statuscmder provides the status command for inspecting a running
// engram API server.
package statuscmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/engram/api"
	"github.com/papercomputeco/engram/pkg/cliui"
	"github.com/papercomputeco/engram/pkg/config"
)

type statusCommander struct {
	apiTarget string
}

const statusLongDesc string = `Show the state of a running engram API server.

Connects to the API server and lists every clone with its current value
(the most recently learned fact, or "basic" when a clone has learned
nothing).

Examples:
  engram status
  engram status --api-target http://localhost:8080`

const statusShortDesc string = "Show the state of a running engram API server"

func NewStatusCmd() *cobra.Command {
	cmder := &statusCommander{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("api-target") {
				cmder.apiTarget = cfg.Client.APITarget
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)

	return cmd
}

func (c *statusCommander) run() error {
	count, err := fetchCount(c.apiTarget)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Clones:"),
		cliui.ValueStyle.Render(strconv.Itoa(count)),
	)

	for number := 1; number <= count; number++ {
		check, err := fetchCheck(c.apiTarget, number)
		if err != nil {
			return err
		}

		fmt.Printf("  %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", number)),
			cliui.ValueStyle.Render(check.Value),
		)
	}

	fmt.Println()
	return nil
}

func fetchCount(apiTarget string) (int, error) {
	var out api.CountResponse
	if err := getJSON(apiTarget, "/clones", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func fetchCheck(apiTarget string, number int) (*api.CheckResponse, error) {
	out := &api.CheckResponse{}
	path := fmt.Sprintf("/clones/%d/check", number)
	if err := getJSON(apiTarget, path, out); err != nil {
		return nil, err
	}
	return out, nil
}

func getJSON(apiTarget, path string, out any) error {
	target, err := url.Parse(apiTarget)
	if err != nil {
		return fmt.Errorf("invalid API target URL: %w", err)
	}
	target.Path = path

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to engram API at %s: %w", apiTarget, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}
