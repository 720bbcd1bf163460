package urls

// Project is the source repository, shown in the planner header
const Project = "github.com/muurk/mvg"

// Issues is where bug reports go
const Issues = "https://github.com/muurk/mvg/issues"

// JourneyPlanner is the MVG web journey planner, the fallback when the API misbehaves
const JourneyPlanner = "https://www.mvg.de/verbindungen.html"

// ServiceStatus lists current disruptions on the MVG website.
// The notifications command reads the same data from the API.
const ServiceStatus = "https://www.mvg.de/dienste/betriebsaenderungen.html"
