package main

import (
	"os"
)

//	@title			begraphes API
//	@version		1.0
//	@description	openstreetmap shortest path engine in go

//	@contact.name	lintang birda saputra
//	@description 	openstreetmap shortest path engine in go. Dijkstra, A* and Bellman-Ford queries over a road network graph

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
