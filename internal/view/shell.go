// Package view renders AirBear's HTML with gomponents.
//
// Every page goes through Page, which wraps the body in the navigation
// shell: the brand mark linking home plus a small set of page-specific
// links. The shell is purely declarative and holds no state.
package view

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// NavLink is one entry in the shell's header.
type NavLink struct {
	Label   string
	Href    string
	Primary bool
}

// Nav selects what the shell shows next to the brand mark.
type Nav struct {
	// Back, when set, renders a back arrow linking to it before the logo.
	Back  string
	Links []NavLink
}

var (
	// HomeNav is shown on the landing page.
	HomeNav = Nav{Links: []NavLink{
		{Label: "Login", Href: "/login"},
		{Label: "Sign Up", Href: "/register", Primary: true},
	}}

	// BookRideNav is shown on the booking page.
	BookRideNav = Nav{Back: "/", Links: []NavLink{
		{Label: "Login", Href: "/login"},
	}}

	// AuthNav is the bare brand mark used by the login and register cards.
	AuthNav = Nav{}
)

// Page renders a complete HTML document around body.
func Page(title string, nav Nav, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:       title + " | AirBear",
		Description: "Ride Green, Snack Smart – AirBear the Eco Way!",
		Language:    "en",
		Head:        []g.Node{g.El("style", g.Raw(stylesheet))},
		Body: []g.Node{
			h.Class("pulse-bg"),
			header(nav),
			h.Main(h.Class("container"), g.Group(body)),
			h.Script(g.Raw(submitGate)),
		},
	})
}

// Logo is the brand mark. It always links to the home page.
func Logo() g.Node {
	return h.A(h.Href("/"), h.Class("logo"), g.Attr("title", "AirBear"),
		h.Span(h.Class("logo-mark"), g.Text("🐻")),
		h.Span(h.Class("logo-word"), g.Text("AirBear")),
	)
}

func header(nav Nav) g.Node {
	return h.Header(h.Class("shell"),
		h.Div(h.Class("shell-brand"),
			g.If(nav.Back != "", h.A(h.Href(nav.Back), h.Class("back"), g.Attr("title", "Back"), g.Text("←"))),
			Logo(),
		),
		g.If(len(nav.Links) > 0, h.Nav(h.Class("shell-links"),
			g.Map(nav.Links, func(l NavLink) g.Node {
				return h.A(h.Href(l.Href), buttonClass(l.Primary), g.Text(l.Label))
			}),
		)),
	)
}

func buttonClass(primary bool, extra ...string) g.Node {
	class := "btn outline"
	if primary {
		class = "btn primary"
	}
	for _, e := range extra {
		class += " " + e
	}
	return h.Class(class)
}

// submitGate keeps each gated form's submit button disabled until the
// browser considers the form valid.
const submitGate = `
document.querySelectorAll("form[data-gate]").forEach(function (f) {
  var b = f.querySelector("button[type=submit]");
  if (!b) { return; }
  var sync = function () { b.disabled = !f.checkValidity(); };
  f.addEventListener("input", sync);
  f.addEventListener("change", sync);
  sync();
});
`

const stylesheet = `
:root { --primary: #15803d; --accent: #0ea5e9; --secondary: #f59e0b; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: #1f2937; }
.pulse-bg { min-height: 100vh; background: linear-gradient(135deg, #16a34a, #0ea5e9); }
.shell { display: flex; align-items: center; justify-content: space-between; padding: 1rem; }
.shell-brand, .shell-links { display: flex; align-items: center; gap: 1rem; }
.logo { display: inline-flex; align-items: center; gap: .5rem; color: #fff; font-weight: 700; font-size: 1.5rem; text-decoration: none; }
.back { color: #fff; font-size: 1.5rem; text-decoration: none; }
.container { max-width: 72rem; margin: 0 auto; padding: 2rem 1rem; }
.hero { text-align: center; color: #fff; margin-bottom: 3rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(20rem, 1fr)); gap: 2rem; }
.card { background: rgba(255,255,255,.95); border-radius: .75rem; padding: 1.5rem; box-shadow: 0 10px 25px rgba(0,0,0,.15); }
.card.narrow { max-width: 28rem; margin: 0 auto; }
.card h2 { color: var(--primary); margin-top: 0; }
.muted { color: #6b7280; }
.btn { display: inline-block; padding: .6rem 1.2rem; border-radius: .5rem; font-weight: 600; text-decoration: none; border: 2px solid var(--primary); cursor: pointer; }
.btn.primary { background: var(--primary); color: #fff; }
.btn.outline { background: rgba(255,255,255,.9); color: var(--primary); }
.btn.block { width: 100%; font-size: 1.1rem; }
.btn[disabled] { opacity: .5; cursor: not-allowed; }
.field { display: flex; flex-direction: column; gap: .35rem; margin-bottom: 1rem; }
.field.checkbox { flex-direction: row; align-items: center; }
.field input, .field select { height: 3rem; padding: 0 .75rem; border: 1px solid #d1d5db; border-radius: .5rem; font-size: 1rem; }
.field.checkbox input { height: auto; }
.field-error { color: #b91c1c; font-size: .875rem; }
.notice { border-radius: .5rem; padding: .75rem 1rem; margin-bottom: 1rem; }
.notice.success { background: #dcfce7; color: #166534; }
.notice.error { background: #fee2e2; color: #991b1b; }
.links { text-align: center; margin-top: 1.5rem; }
.links a { color: var(--primary); font-weight: 500; }
.map-placeholder { aspect-ratio: 16 / 9; display: flex; flex-direction: column; align-items: center; justify-content: center; border: 2px dashed rgba(21,128,61,.3); border-radius: .5rem; }
.promo { text-align: center; margin-top: 4rem; }
`
