package scanner

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor returns a fixed PortState and, when calls is set, counts how
// many times Scan ran: a plain struct stands in for a mock.
type fakeExecutor struct {
	state PortState
	calls *int
}

func (f fakeExecutor) Scan(_ *net.TCPAddr) PortState {
	if f.calls != nil {
		*f.calls++
	}
	return f.state
}

func fakeTechnique(kind ScanType, state PortState) Technique {
	return Technique{Kind: kind, Executor: fakeExecutor{state: state}}
}

func TestMatchesProtocol(t *testing.T) {
	cases := []struct {
		name  string
		kind  ScanType
		proto Protocol
		want  bool
	}{
		{"TCP technique matches TCP-tagged port", ScanTCP, ProtoTCP, true},
		{"TCP technique matches Both-tagged port", ScanTCP, ProtoBoth, true},
		{"TCP technique does not match UDP-tagged port", ScanTCP, ProtoUDP, false},
		{"SYN technique matches TCP-tagged port", ScanSYN, ProtoTCP, true},
		{"SYN technique matches Both-tagged port", ScanSYN, ProtoBoth, true},
		{"UDP technique matches UDP-tagged port", ScanUDP, ProtoUDP, true},
		{"UDP technique does not match TCP-tagged port", ScanUDP, ProtoTCP, false},
		{"UDP technique matches Both-tagged port", ScanUDP, ProtoBoth, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchesProtocol(tc.kind, tc.proto))
		})
	}
}

func TestSelectForCatalogEntry(t *testing.T) {
	tcpTech := fakeTechnique(ScanTCP, StateOpen)
	udpTech := fakeTechnique(ScanUDP, StateOpen)

	t.Run("picks the first technique whose kind matches the entry protocol", func(t *testing.T) {
		entry := CommonPortEntry{Port: 80, Protocol: ProtoTCP}
		got := selectForCatalogEntry(entry, []Technique{tcpTech, udpTech})
		require.Len(t, got, 1)
		assert.Equal(t, ScanTCP, got[0].Kind)
	})

	t.Run("a Both-tagged entry takes whichever technique comes first", func(t *testing.T) {
		entry := CommonPortEntry{Port: 53, Protocol: ProtoBoth}
		got := selectForCatalogEntry(entry, []Technique{udpTech, tcpTech})
		require.Len(t, got, 1)
		assert.Equal(t, ScanUDP, got[0].Kind)
	})

	t.Run("no matching technique means the entry is skipped", func(t *testing.T) {
		entry := CommonPortEntry{Port: 69, Protocol: ProtoUDP}
		got := selectForCatalogEntry(entry, []Technique{tcpTech})
		assert.Empty(t, got)
	})
}

func TestBuildJobs(t *testing.T) {
	t.Run("selected ports carry the full technique list in order, unfiltered", func(t *testing.T) {
		techniques := []Technique{fakeTechnique(ScanUDP, StateOpen), fakeTechnique(ScanTCP, StateOpen)}
		jobs := buildJobs(SelectedPorts([]uint16{21, 22, 9999}), techniques)

		require.Len(t, jobs, 3)
		assert.Equal(t, uint16(21), jobs[0].port)
		assert.Equal(t, uint16(9999), jobs[2].port)
		assert.Equal(t, techniques, jobs[0].techniques)
	})

	t.Run("all-ports sweep drops catalog entries no technique can serve", func(t *testing.T) {
		jobs := buildJobs(AllPorts(), []Technique{fakeTechnique(ScanTCP, StateOpen)})

		for _, j := range jobs {
			require.Len(t, j.techniques, 1)
			assert.Equal(t, ScanTCP, j.techniques[0].Kind)
		}
		assert.Less(t, len(jobs), len(CommonPorts()), "pure-UDP catalog entries must be filtered out")
	})
}

func TestFirstNonClosed(t *testing.T) {
	t.Run("closed results are skipped in favor of a later technique", func(t *testing.T) {
		calls := 0
		techniques := []Technique{
			fakeTechnique(ScanTCP, stateClosed),
			{Kind: ScanSYN, Executor: fakeExecutor{state: StateOpen, calls: &calls}},
		}
		addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}

		got := firstNonClosed(addr, techniques)

		require.NotNil(t, got)
		assert.Equal(t, StateOpen, got.State)
		assert.Equal(t, ScanSYN, got.Kind)
		assert.Equal(t, uint16(80), got.Port)
		assert.Equal(t, 1, calls)
	})

	t.Run("all techniques closed means no result", func(t *testing.T) {
		techniques := []Technique{fakeTechnique(ScanTCP, stateClosed), fakeTechnique(ScanSYN, stateClosed)}
		addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 81}

		assert.Nil(t, firstNonClosed(addr, techniques))
	})

	t.Run("filtered stops the search just like open does", func(t *testing.T) {
		techniques := []Technique{fakeTechnique(ScanSYN, StateFiltered), fakeTechnique(ScanTCP, StateOpen)}
		addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 82}

		got := firstNonClosed(addr, techniques)
		require.NotNil(t, got)
		assert.Equal(t, StateFiltered, got.State)
		assert.Equal(t, ScanSYN, got.Kind)
	})
}

func TestSweep(t *testing.T) {
	t.Run("collects every non-closed port across an explicit list", func(t *testing.T) {
		techniques := []Technique{fakeTechnique(ScanTCP, StateOpen)}
		result := Sweep(net.IPv4(127, 0, 0, 1), SelectedPorts([]uint16{80, 443, 22}), techniques)

		assert.Len(t, result.Ports, 3)
		assert.GreaterOrEqual(t, result.Elapsed.Nanoseconds(), int64(0))
	})

	t.Run("closed-only techniques yield an empty result, not nil jobs", func(t *testing.T) {
		techniques := []Technique{fakeTechnique(ScanTCP, stateClosed)}
		result := Sweep(net.IPv4(127, 0, 0, 1), SelectedPorts([]uint16{80}), techniques)

		assert.Empty(t, result.Ports)
	})

	t.Run("empty port set returns immediately with no ports", func(t *testing.T) {
		result := Sweep(net.IPv4(127, 0, 0, 1), SelectedPorts(nil), []Technique{fakeTechnique(ScanTCP, StateOpen)})
		assert.Empty(t, result.Ports)
	})
}
