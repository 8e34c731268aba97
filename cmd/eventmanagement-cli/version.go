package main

import (
	"fmt"
	"runtime"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.gitCommit=... -X main.buildDate=...".
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

type versionInfo struct {
	Application string `json:"application"`
	Version     string `json:"version"`
	GitCommit   string `json:"gitCommit"`
	BuildDate   string `json:"buildDate"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
}

func buildVersionInfo() versionInfo {
	return versionInfo{
		Application: applicationName,
		Version:     version,
		GitCommit:   gitCommit,
		BuildDate:   buildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func newVersionCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "show the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildVersionInfo()

			switch outputFormat {
			case "text":
				cmd.Println("Application: ", info.Application)
				cmd.Println("Version:     ", info.Version)
				cmd.Println("GitCommit:   ", info.GitCommit)
				cmd.Println("BuildDate:   ", info.BuildDate)
				cmd.Println("GoVersion:   ", info.GoVersion)
				cmd.Println("Platform:    ", info.Platform)
			case "json":
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", " ")
				if err := enc.Encode(info); err != nil {
					return fmt.Errorf("failed to show version information: %w", err)
				}
			default:
				return fmt.Errorf("unsupported output format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "format to display results (available=[text, json])")

	return cmd
}
