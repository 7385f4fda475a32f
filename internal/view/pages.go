package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/pages"
)

// Home renders the landing page.
func Home() g.Node {
	return Page("Welcome", HomeNav,
		h.Section(h.Class("hero"),
			h.H1(g.Text("Welcome to AirBear")),
			h.P(g.Text("Ride Green, Snack Smart – AirBear the Eco Way!")),
			h.A(h.Href(pages.BookRide.Path), buttonClass(true), g.Text("Book Your Eco Ride")),
		),
		h.Div(h.Class("grid"),
			card("🌱 Solar-Powered Rides", "Clean, sustainable transportation powered by the sun",
				h.P(h.Class("muted"), g.Text("Our eco-friendly rickshaws are equipped with solar panels, ensuring every ride reduces your carbon footprint while getting you where you need to go.")),
			),
			card("🛒 Onboard Bodegas", "Snacks and drinks available during your journey",
				h.P(h.Class("muted"), g.Text("Enjoy fresh snacks, cold drinks, and local treats from our carefully curated selection available right in your ride.")),
			),
		),
		h.Section(h.Class("promo"),
			card("Special Promo!", "Limited time offer for new riders",
				h.H3(g.Text("$100 T-Shirt Promo")),
				h.P(g.Text("Get this exclusive AirBear eco-friendly t-shirt with your first ride!")),
				h.P(h.Class("muted"), h.Em(g.Text("*Limited to 1 ride per day, purchaser only"))),
				h.A(h.Href(pages.BookRide.Path), buttonClass(false), g.Text("Claim Your Promo")),
			),
		),
	)
}

// Login renders the sign-in card.
func Login(ctl *form.Controller, n Notice) g.Node {
	def := pages.Login
	return Page("Login", AuthNav,
		authCard(def,
			formCard(def, ctl, n, nil),
			h.Div(h.Class("links"),
				h.P(h.A(h.Href("/forgot-password"), g.Text("Forgot Password?"))),
				h.P(h.Class("muted"),
					g.Text("Don't have an account? "),
					h.A(h.Href(pages.Register.Path), g.Text("Sign up here")),
				),
			),
		),
	)
}

// Register renders the sign-up card.
func Register(ctl *form.Controller, n Notice) g.Node {
	def := pages.Register
	labels := map[string]g.Node{
		"acceptTerms": g.Group{
			g.Text("I agree to the "),
			h.A(h.Href("/terms"), g.Text("Terms of Service")),
			g.Text(" and "),
			h.A(h.Href("/privacy"), g.Text("Privacy Policy")),
		},
	}
	return Page("Register", AuthNav,
		authCard(def,
			formCard(def, ctl, n, labels),
			h.Div(h.Class("links"),
				h.P(h.Class("muted"),
					g.Text("Already have an account? "),
					h.A(h.Href(pages.Login.Path), g.Text("Sign in here")),
				),
			),
		),
	)
}

// BookRide renders the trip form next to the route map placeholder.
func BookRide(ctl *form.Controller, n Notice) g.Node {
	def := pages.BookRide
	return Page("Book a Ride", BookRideNav,
		h.Section(h.Class("hero"),
			h.H1(g.Text(def.Title)),
			h.P(g.Text(def.Subtitle)),
		),
		h.Div(h.Class("grid"),
			card("📍 Trip Details", "Select your pickup and destination points",
				formCard(def, ctl, n, nil),
			),
			card("Route Map", "Visual representation of your journey",
				h.Div(h.Class("map-placeholder"),
					h.P(h.Strong(g.Text("Mapbox Placeholder"))),
					h.P(h.Class("muted"), g.Text("Interactive map will appear here")),
				),
			),
		),
		h.Section(h.Class("promo"),
			card("Why Choose AirBear?", "",
				h.Ul(
					h.Li(g.Text("🌞 100% Solar Powered")),
					h.Li(g.Text("🍿 Onboard Snacks")),
					h.Li(g.Text("🌱 Zero Emissions")),
				),
			),
		),
	)
}

// Placeholder renders the pages that are linked to but not built yet.
func Placeholder(title string) g.Node {
	return Page(title, HomeNav,
		h.Div(h.Class("card narrow"),
			h.H2(g.Text(title)),
			h.P(h.Class("muted"), g.Text("This page is coming soon.")),
			h.A(h.Href("/"), buttonClass(true), g.Text("Back to home")),
		),
	)
}

func authCard(def pages.Definition, children ...g.Node) g.Node {
	return h.Div(h.Class("card narrow"),
		h.H2(g.Text(def.Title)),
		h.P(h.Class("muted"), g.Text(def.Subtitle)),
		g.Group(children),
	)
}

func card(title, description string, children ...g.Node) g.Node {
	return h.Div(h.Class("card"),
		h.H2(g.Text(title)),
		g.If(description != "", h.P(h.Class("muted"), g.Text(description))),
		g.Group(children),
	)
}
