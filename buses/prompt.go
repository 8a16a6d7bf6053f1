package buses

import (
	"strings"
	"text/template"
)

var (
	nearbyTemplate = template.Must(template.New("nearby").Parse(
		`Identify the specific road segment or village at {{printf "%f" .Lat}}, {{printf "%f" .Lng}}. ` +
			`List at least 8 bus routes (TNSTC, MTC, Private) passing through this point. ` +
			`Return JSON with: locationName, isRural, routes (array with busNumber, name, source, destination, frequencyMinutes, timeAtYourLocation).`))

	searchTemplate = template.Must(template.New("search").Parse(
		`List ALL bus services (TNSTC, SETC, Private) between {{.Source}} and {{.Destination}}. ` +
			`Provide departure times from {{.Source}}, arrival times at {{.Destination}}, and frequency. ` +
			`Return JSON with: totalBusesPerDay, buses (array with busNumber, name, type, departureTime, arrivalTime, frequencyMinutes, tripsPerDay).`))

	boardTemplate = template.Must(template.New("board").Parse(
		`Create a digital timing board for {{.StandName}} Bus Stand, Tamil Nadu. ` +
			`List {{.Departures}} upcoming departures. ` +
			`Return JSON with: standName, departures (array with busNumber, destination, scheduledTime, platform, status, type).`))
)

const boardDepartures = 15

func execute(tmpl *template.Template, data any) string {
	out := &strings.Builder{}
	if err := tmpl.Execute(out, data); err != nil {
		// templates are static and the data types fixed
		panic(err)
	}
	return out.String()
}

func NearbyPrompt(lat, lng float64) string {
	return execute(nearbyTemplate, struct{ Lat, Lng float64 }{lat, lng})
}

func SearchPrompt(source, destination string) string {
	return execute(searchTemplate, struct{ Source, Destination string }{source, destination})
}

func BoardPrompt(standName string) string {
	return execute(boardTemplate, struct {
		StandName  string
		Departures int
	}{standName, boardDepartures})
}
