package server

import (
	"net/http"

	"github.com/desertthunder/rolodex/internal/services"
)

func str(s string) *string { return &s }

// SeedUsers returns the first users of the public placeholder dataset.
func SeedUsers() []services.RemoteUser {
	return []services.RemoteUser{
		{
			ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz",
			Phone: "1-770-736-8031 x56442", Website: str("hildegard.org"),
			Company: &services.RemoteCompany{Name: str("Romaguera-Crona"), CatchPhrase: "Multi-layered client-server neural-net", BS: "harness real-time e-markets"},
			Address: &services.RemoteAddress{Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874",
				Geo: &services.RemoteGeo{Lat: "-37.3159", Lng: "81.1496"}},
		},
		{
			ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv",
			Phone: "010-692-6593 x09125", Website: str("anastasia.net"),
			Company: &services.RemoteCompany{Name: str("Deckow-Crist"), CatchPhrase: "Proactive didactic contingency", BS: "synergize scalable supply-chains"},
			Address: &services.RemoteAddress{Street: "Victor Plains", Suite: "Suite 879", City: "Wisokyburgh", Zipcode: "90566-7771",
				Geo: &services.RemoteGeo{Lat: "-43.9509", Lng: "-34.4618"}},
		},
		{
			ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net",
			Phone: "1-463-123-4447", Website: str("ramiro.info"),
			Company: &services.RemoteCompany{Name: str("Romaguera-Jacobson"), CatchPhrase: "Face to face bifurcated interface", BS: "e-enable strategic applications"},
			Address: &services.RemoteAddress{Street: "Douglas Extension", Suite: "Suite 847", City: "McKenziehaven", Zipcode: "59590-4157",
				Geo: &services.RemoteGeo{Lat: "-68.6102", Lng: "-47.0653"}},
		},
		{
			ID: 4, Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org",
			Phone: "493-170-9623 x156", Website: str("kale.biz"),
			Company: &services.RemoteCompany{Name: str("Robel-Corkery"), CatchPhrase: "Multi-tiered zero tolerance productivity", BS: "transition cutting-edge web services"},
			Address: &services.RemoteAddress{Street: "Hoeger Mall", Suite: "Apt. 692", City: "South Elvis", Zipcode: "53919-4257",
				Geo: &services.RemoteGeo{Lat: "29.4572", Lng: "-164.2990"}},
		},
		{
			ID: 5, Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca",
			Phone: "(254)954-1289", Website: str("demarco.info"),
			Company: &services.RemoteCompany{Name: str("Keebler LLC"), CatchPhrase: "User-centric fault-tolerant solution", BS: "revolutionize end-to-end systems"},
			Address: &services.RemoteAddress{Street: "Skiles Walks", Suite: "Suite 351", City: "Roscoeview", Zipcode: "33263",
				Geo: &services.RemoteGeo{Lat: "-31.8129", Lng: "62.5342"}},
		},
	}
}

// NewMockAPI builds the router `rolodex serve` runs: users plus a /health probe, behind mw.
func NewMockAPI(users *UsersHandler, mw ...Middleware) *BasicRouter {
	router := NewBasicRouter()
	router.Use(mw...)
	router.Handler(users)
	router.HandleFunc(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "users": len(users.Users())})
	})
	return router
}
