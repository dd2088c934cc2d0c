package macconfig

import "testing"

func TestDefaultMatchesOriginalEngineConstants(t *testing.T) {
	c := Default()
	cases := []struct {
		name string
		got  any
		want any
	}{
		{"TxMinPreambleHeaderTime", c.TxMinPreambleHeaderTime, uint32(15)},
		{"TxTimePerByte", c.TxTimePerByte, uint32(2)},
		{"TxAckTimeout", c.TxAckTimeout, uint32(1000)},
		{"TxRetransmissionTime", c.TxRetransmissionTime, uint32(1000)},
		{"TxRetransmissionRetrys", c.TxRetransmissionRetrys, uint8(3)},
		{"BackoffExpMin", c.BackoffExpMin, uint8(7)},
		{"BackoffExpMax", c.BackoffExpMax, uint8(12)},
		{"ForwardMaxRSSIDbm", c.ForwardMaxRSSIDbm, int16(-90)},
		{"ForwardMinDBBoost", c.ForwardMinDBBoost, int16(20)},
		{"ForwardDelayMin", c.ForwardDelayMin, uint32(100)},
		{"ForwardDelayMax", c.ForwardDelayMax, uint32(300)},
		{"MaxNeighborsForTracking2Hop", c.MaxNeighborsForTracking2Hop, 5},
		{"Coding48Threshold", c.Coding48Threshold, 8},
		{"DefaultTxBackoff", c.DefaultTxBackoff, uint32(1000)},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}
