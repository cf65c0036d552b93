package pipeline

import (
	"context"
	"strings"
	"testing"

	"go-viewer-dashboard/internal/model"
)

const usersCSV = `User_ID,Name,Age,Country,Subscription_Type,Watch_Time_Hours,Favorite_Genre,Last_Login
1,Ana,25,US,Basic,10.5,Drama,2024-01-15
2,Ben,35,US,Premium,20,Action,2024-02-01
3,Cruz,45,MX,Basic,5,Drama,2024-01-20
4,Dee,17,MX,Standard,31,Comedy,2024-03-05
5,Eve,60,CA,Premium,2.5,Action,2023-12-31
6,Fay,30,US,Basic,0,Drama,2024-02-10
`

func loadFixture(t *testing.T, data string) *model.Dataset {
	t.Helper()
	ds, err := ReadCSV(context.Background(), strings.NewReader(data), "fixture.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	return ds
}

func user(country string, age int, hours float64) model.Record {
	return model.Record{Country: country, Age: age, WatchTimeHours: hours}
}

func rowValues(t model.SummaryTable) map[string]float64 {
	out := make(map[string]float64, len(t.Rows))
	for _, r := range t.Rows {
		out[r.Key] = r.Value
	}
	return out
}
