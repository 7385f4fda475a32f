package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/pages"
)

// Notice is the feedback shown above a form after a POST.
type Notice struct {
	// Accepted is set once the submission was recorded.
	Accepted  bool
	AttemptID string

	// Message is a form-level problem, e.g. missing required fields.
	Message string

	// Fields maps a field name to its format problem.
	Fields map[string]string
}

// formCard renders def's fields from ctl. labels overrides the plain-text
// label of individual fields.
func formCard(def pages.Definition, ctl *form.Controller, n Notice, labels map[string]g.Node) g.Node {
	values := ctl.Values()

	return h.Form(h.Method("post"), h.Action(def.Path), h.Class("form"), g.Attr("data-gate"),
		notice(n),
		g.Map(ctl.Fields(), func(fd form.FieldDescriptor) g.Node {
			label, ok := labels[fd.Name]
			if !ok {
				label = g.Text(fd.Label)
			}
			return field(fd, values[fd.Name], label, n.Fields[fd.Name])
		}),
		h.Button(h.Type("submit"), buttonClass(true, "block"),
			g.If(!submitReady(ctl), h.Disabled()),
			g.Text(def.SubmitLabel),
		),
	)
}

// submitReady reports whether the rendered form can be posted as is.
// Password inputs are rendered blank, so a required password counts as
// empty even when the controller holds one.
func submitReady(ctl *form.Controller) bool {
	if !ctl.IsSubmittable() {
		return false
	}
	for _, fd := range ctl.Fields() {
		if fd.Required && fd.Kind == form.KindPassword {
			return false
		}
	}
	return true
}

func notice(n Notice) g.Node {
	switch {
	case n.Accepted:
		return h.Div(h.Class("notice success"), h.Role("status"),
			g.Text("Thanks! Your request was received."),
			g.If(n.AttemptID != "", h.Small(g.Textf(" Reference %s", n.AttemptID))),
		)
	case n.Message != "":
		return h.Div(h.Class("notice error"), h.Role("alert"), g.Text(n.Message))
	default:
		return nil
	}
}

func field(fd form.FieldDescriptor, value any, label g.Node, problem string) g.Node {
	errNode := g.If(problem != "", h.Span(h.Class("field-error"), g.Text(problem)))

	switch fd.Kind {
	case form.KindBool:
		checked, _ := value.(bool)
		return h.Div(h.Class("field checkbox"),
			h.Input(h.Type("checkbox"), h.ID(fd.Name), h.Name(fd.Name), h.Value("on"),
				g.If(checked, h.Checked()),
				g.If(fd.Required, h.Required()),
			),
			h.Label(h.For(fd.Name), label),
			errNode,
		)

	case form.KindSelect:
		selected, _ := value.(string)
		return h.Div(h.Class("field"),
			h.Label(h.For(fd.Name), label),
			h.Select(h.ID(fd.Name), h.Name(fd.Name),
				g.If(fd.Required, h.Required()),
				h.Option(h.Value(""), g.If(selected == "", h.Selected()), g.Text(fd.Placeholder)),
				g.Map(fd.Options, func(opt string) g.Node {
					return h.Option(h.Value(opt), g.If(opt == selected, h.Selected()), g.Text(opt))
				}),
			),
			errNode,
		)

	default:
		text, _ := value.(string)
		// Passwords are never echoed back into the page.
		if fd.Kind == form.KindPassword {
			text = ""
		}
		return h.Div(h.Class("field"),
			h.Label(h.For(fd.Name), label),
			h.Input(h.Type(fd.Kind.String()), h.ID(fd.Name), h.Name(fd.Name),
				g.If(fd.Placeholder != "", h.Placeholder(fd.Placeholder)),
				g.If(text != "", h.Value(text)),
				g.If(fd.Required, h.Required()),
			),
			errNode,
		)
	}
}
