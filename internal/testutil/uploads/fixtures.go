package uploads

// Fixture is a predefined set of upload rows.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Rows returns the data rows, without a header.
	Rows() [][]string
}

type fixture struct {
	name string
	rows [][]string
}

func (f *fixture) Name() string     { return f.name }
func (f *fixture) Rows() [][]string { return f.rows }

// Predefined fixtures for common test scenarios.
var (
	// FixtureSample matches the downloadable sample upload.
	FixtureSample = &fixture{
		name: "Sample",
		rows: [][]string{
			{"aluminium", "mining", "2.5", "15", "8"},
			{"aluminium", "refining", "8.2", "45", "25"},
			{"aluminium", "smelting", "12.8", "65", "35"},
			{"copper", "mining", "4.2", "22", "15"},
			{"copper", "refining", "6.8", "35", "20"},
		},
	}

	// FixtureThreeBadRows has one good row and three rows with exactly one
	// problem each.
	FixtureThreeBadRows = &fixture{
		name: "ThreeBadRows",
		rows: [][]string{
			{"aluminium", "mining", "2.5", "15", "8"},
			{"titanium", "mining", "1", "1", "1"},
			{"copper", "melting", "1", "1", "1"},
			{"copper", "mining", "-4", "22", "15"},
		},
	}

	// FixtureMixedCase repeats one group with varied casing and spacing.
	FixtureMixedCase = &fixture{
		name: "MixedCase",
		rows: [][]string{
			{"Aluminium", "Mining", "2", "10", "6"},
			{" ALUMINIUM ", "mining ", "4", "20", "10"},
			{"aluminium", "MINING", "3", "30", "8"},
		},
	}
)
