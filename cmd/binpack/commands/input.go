package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/piwi3910/binpack/internal/importer"
	"github.com/piwi3910/binpack/internal/model"
	"github.com/piwi3910/binpack/internal/project"
)

// instanceFlags selects where an instance comes from. Exactly one of
// weights, input and project must be given.
type instanceFlags struct {
	weights  string
	input    string
	project  string
	capacity float64
	name     string
}

func (f *instanceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.weights, "weights", "", "Item weights, comma or space separated")
	fs.StringVarP(&f.input, "input", "i", "", "CSV or Excel item list (label, weight, quantity)")
	fs.StringVar(&f.project, "project", "", "Saved project file to solve again")
	fs.Float64VarP(&f.capacity, "capacity", "c", 0, "Bin capacity (required unless the project sets one)")
	fs.StringVar(&f.name, "name", "", "Instance name shown in reports")
}

// load builds the instance and reports importer warnings through the logger.
func (f *instanceFlags) load(a *app) (model.Instance, error) {
	sources := 0
	for _, s := range []string{f.weights, f.input, f.project} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return model.Instance{}, fmt.Errorf("give exactly one of --weights, --input or --project")
	}

	var inst model.Instance
	switch {
	case f.weights != "":
		weights, err := importer.ParseWeights(f.weights)
		if err != nil {
			return model.Instance{}, err
		}
		inst = model.NewInstanceFromWeights(weights, f.capacity)

	case f.input != "":
		res := importer.ImportFile(f.input)
		for _, w := range res.Warnings {
			a.logger.Warn("import", "file", f.input, "warning", w)
		}
		if len(res.Errors) > 0 {
			return model.Instance{}, fmt.Errorf("import %s: %s", f.input, strings.Join(res.Errors, "; "))
		}
		inst = model.Instance{Name: "Untitled", Capacity: f.capacity, Items: res.Items}
		a.logger.Info("items imported", "file", f.input, "items", len(res.Items))

	default:
		p, err := project.LoadProject(f.project)
		if err != nil {
			return model.Instance{}, err
		}
		inst = p.Instance
		if f.capacity > 0 {
			inst.Capacity = f.capacity
		}
	}

	if f.name != "" {
		inst.Name = f.name
	}
	if !(inst.Capacity > 0) {
		return model.Instance{}, fmt.Errorf("--capacity must be > 0")
	}
	return inst, nil
}
