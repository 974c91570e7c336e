package trial

import "strconv"

// IowaRecord is one card pull in an Iowa Gambling Task run.
type IowaRecord struct {
	Trial     int    `json:"trial"`
	Deck      string `json:"deck"`
	Win       int64  `json:"win"`
	Loss      int64  `json:"loss"`
	Net       int64  `json:"net"`
	Balance   int64  `json:"balance"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

var iowaColumns = []string{"trial", "deck", "win", "loss", "net", "balance", "elapsed_ms"}

func (IowaRecord) Columns() []string { return iowaColumns }

func (r IowaRecord) Values() []string {
	return []string{
		strconv.Itoa(r.Trial),
		r.Deck,
		strconv.FormatInt(r.Win, 10),
		strconv.FormatInt(r.Loss, 10),
		strconv.FormatInt(r.Net, 10),
		strconv.FormatInt(r.Balance, 10),
		strconv.FormatInt(r.ElapsedMS, 10),
	}
}

func (r IowaRecord) WithTrial(idx int) IowaRecord {
	r.Trial = idx
	return r
}

// LibetRecord is one trial of the Libet clock experiment. UrgeTimeMS is nil
// when the participant did not report an urge.
type LibetRecord struct {
	Trial      int    `json:"trial"`
	StopTimeMS int64  `json:"stop_time_msecs"`
	UrgeTimeMS *int64 `json:"urge_time_msecs,omitempty"`
}

var libetColumns = []string{"trial", "stop_time_msecs", "urge_time_msecs"}

func (LibetRecord) Columns() []string { return libetColumns }

func (r LibetRecord) Values() []string {
	urge := ""
	if r.UrgeTimeMS != nil {
		urge = strconv.FormatInt(*r.UrgeTimeMS, 10)
	}
	return []string{strconv.Itoa(r.Trial), strconv.FormatInt(r.StopTimeMS, 10), urge}
}

func (r LibetRecord) WithTrial(idx int) LibetRecord {
	r.Trial = idx
	return r
}
