package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("available scenes\n%s", sceneTable())
	return nil
}

func sceneTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Group", "Description"})
	for _, group := range scene.ListSceneGroups() {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
		}
	}
	table.Render()
	return buf.String()
}
