package myenergi

// Device status payloads as returned by the director endpoints.
// Only the fields we read are mapped.

type ZappiStatus struct {
	SerialNumber int64  `json:"sno"`
	Date         string `json:"dat"` // DD-MM-YYYY, UTC
	Time         string `json:"tim"` // HH:MM:SS, UTC
	GridWatts    int    `json:"grd"`
	Status       int    `json:"sta"`
	PlugStatus   string `json:"pst"`
}

type EddiStatus struct {
	SerialNumber int64  `json:"sno"`
	Date         string `json:"dat"`
	Time         string `json:"tim"`
	Tank1Celsius int    `json:"tp1"`
	Status       int    `json:"sta"`
}

type statusResponse struct {
	Zappi []ZappiStatus `json:"zappi"`
	Eddi  []EddiStatus  `json:"eddi"`
}
