package phac

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vax-coverage/internal/refdata"
)

const header = "week_end,prename,numtotal_dose1,numtotal_dose2,numtotal_dose3,proptotal_dose1,proptotal_dose2,proptotal_dose3\n"

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaccination-coverage.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesWeeklyRows(t *testing.T) {
	path := writeSnapshot(t, header+
		"2021-12-04,British Columbia,4171844,4041474,100000,80.00,77.50,1.92\n"+
		"2021-12-04,Yukon,30090,28800,,70.00,67.00,\n")

	records, err := Load(path, refdata.New())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	bc := records[0]
	wantDate := time.Date(2021, time.December, 4, 0, 0, 0, 0, time.UTC)
	if !bc.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", bc.Date, wantDate)
	}
	if bc.Jurisdiction != refdata.BritishColumbia {
		t.Errorf("Jurisdiction = %q, want %q", bc.Jurisdiction, refdata.BritishColumbia)
	}
	if !bc.Count1.Valid || bc.Count1.Value != 4171844 {
		t.Errorf("Count1 = %+v, want valid 4171844", bc.Count1)
	}
	if !bc.Percent3.Valid || bc.Percent3.Value != 1.92 {
		t.Errorf("Percent3 = %+v, want valid 1.92", bc.Percent3)
	}

	yt := records[1]
	if yt.Count3.Valid {
		t.Errorf("empty third-dose count must be null, got %+v", yt.Count3)
	}
	if yt.Percent3.Valid {
		t.Errorf("empty third-dose percentage must be null, got %+v", yt.Percent3)
	}
}

func TestLoadFailures(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown jurisdiction",
			content: header + "2021-12-04,Atlantis,100,100,100,1.00,1.00,1.00\n",
			wantErr: "unknown jurisdiction",
		},
		{
			name:    "unparseable date",
			content: header + "04/12/2021,Yukon,100,100,100,1.00,1.00,1.00\n",
			wantErr: "week_end",
		},
		{
			name:    "non-numeric count",
			content: header + "2021-12-04,Yukon,lots,100,100,1.00,1.00,1.00\n",
			wantErr: "invalid count",
		},
		{
			name:    "non-numeric percentage",
			content: header + "2021-12-04,Yukon,100,100,100,one,1.00,1.00\n",
			wantErr: "invalid percentage",
		},
		{
			name:    "missing column",
			content: "week_end,prename,numtotal_dose1\n2021-12-04,Yukon,100\n",
			wantErr: "missing column",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSnapshot(t, tc.content)
			_, err := Load(path, refdata.New())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestCoverageDropsAggregate(t *testing.T) {
	path := writeSnapshot(t, header+
		"2021-12-04,Canada,30596886,,,80.00,,\n"+
		"2021-12-04,Ontario,11860000,,,80.00,,\n")

	records, err := Load(path, refdata.New())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	cov := Coverage(records)
	if len(cov) != 1 {
		t.Fatalf("got %d coverage records, want 1", len(cov))
	}
	if cov[0].Jurisdiction != refdata.Ontario {
		t.Errorf("Jurisdiction = %q, want %q", cov[0].Jurisdiction, refdata.Ontario)
	}
	if !cov[0].Dose1.Valid || cov[0].Dose1.Value != 80.00 {
		t.Errorf("Dose1 = %+v, want valid 80.00", cov[0].Dose1)
	}
	if cov[0].Dose3.Valid {
		t.Errorf("Dose3 = %+v, want null", cov[0].Dose3)
	}
}

func TestMaxDate(t *testing.T) {
	records := []Record{
		{Date: time.Date(2021, time.November, 27, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2021, time.December, 4, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2021, time.October, 2, 0, 0, 0, 0, time.UTC)},
	}
	want := time.Date(2021, time.December, 4, 0, 0, 0, 0, time.UTC)
	if got := MaxDate(records); !got.Equal(want) {
		t.Errorf("MaxDate = %v, want %v", got, want)
	}
}
