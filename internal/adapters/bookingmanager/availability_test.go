package bookingmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAvailabilityResponse_ExpandsRanges(t *testing.T) {
	// one unavailable range 2024-02-20..2024-02-20 queried over 02-19..02-20
	doc := mustXML(t, `
		<availability property_id="341" from="2024-02-19" to="2024-02-20">
			<unavailable from="2024-02-20" to="2024-02-20"/>
		</availability>`)

	resp, err := mapAvailabilityResponse(doc)
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.True(t, resp.Days[0].Available)
	assert.False(t, resp.Days[1].Available)
	assert.Equal(t, "2024-02-19", resp.Days[0].Day.Format("2006-01-02"))
	assert.Equal(t, "2024-02-20", resp.Days[1].Day.Format("2006-01-02"))
}

func TestMapAvailabilityResponse_NoRangesAllAvailable(t *testing.T) {
	doc := mustXML(t, `<availability property_id="1" from="2024-03-01" to="2024-03-05"/>`)
	resp, err := mapAvailabilityResponse(doc)
	require.NoError(t, err)
	require.Len(t, resp.Days, 5)
	for _, d := range resp.Days {
		assert.True(t, d.Available)
	}
}

func TestMapAvailabilityResponse_SingleRangeLifted(t *testing.T) {
	doc := mustXML(t, `
		<availability from="2024-03-01" to="2024-03-03">
			<unavailable from="2024-03-01" to="2024-03-02"/>
		</availability>`)
	resp, err := mapAvailabilityResponse(doc)
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)
	assert.False(t, resp.Days[0].Available)
	assert.False(t, resp.Days[1].Available)
	assert.True(t, resp.Days[2].Available)
}

func TestMapAvailabilityResponse_BadRangeSkipped(t *testing.T) {
	doc := mustXML(t, `
		<availability from="2024-03-01" to="2024-03-02">
			<unavailable from="???" to="2024-03-01"/>
		</availability>`)
	resp, err := mapAvailabilityResponse(doc)
	require.NoError(t, err)
	// the malformed range is dropped, not treated as blocking
	assert.True(t, resp.Days[0].Available)
	assert.True(t, resp.Days[1].Available)
}

func TestMapAvailabilityResponse_MissingPeriod(t *testing.T) {
	doc := mustXML(t, `<availability property_id="1"><unavailable from="2024-03-01" to="2024-03-02"/></availability>`)
	_, err := mapAvailabilityResponse(doc)
	require.Error(t, err)
}

func TestMapStayRatesResponse_ParsesActualInput(t *testing.T) {
	doc := mustXML(t, `
		<rates property_id="341">
			<rate from="2024-05-01" to="2024-06-30">
				<min_stay>3</min_stay><max_stay>21</max_stay>
				<amount>180.50</amount><currency>EUR</currency>
			</rate>
			<rate from="2024-07-01" to="2024-08-31">
				<min_stay>7</min_stay>
				<amount>260.00</amount><currency>EUR</currency>
			</rate>
		</rates>`)

	resp, err := mapStayRatesResponse(doc)
	require.NoError(t, err)
	assert.Equal(t, 341, resp.PropertyID)
	require.Len(t, resp.Rates, 2)
	assert.Equal(t, 180.50, resp.Rates[0].Amount)
	assert.Equal(t, 3, resp.Rates[0].MinStay)
	assert.Equal(t, 21, resp.Rates[0].MaxStay)
	// min_stay defaults to 1 when absent, max_stay to unbounded 0
	assert.Equal(t, 260.00, resp.Rates[1].Amount)
	assert.Equal(t, 7, resp.Rates[1].MinStay)
	assert.Equal(t, 0, resp.Rates[1].MaxStay)
}

func TestMapStayRatesResponse_SkipsRowsWithoutPeriod(t *testing.T) {
	doc := mustXML(t, `
		<rates property_id="1">
			<rate><amount>99.0</amount></rate>
			<rate from="2024-05-01" to="2024-05-31"><amount>100.0</amount></rate>
		</rates>`)
	resp, err := mapStayRatesResponse(doc)
	require.NoError(t, err)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, 100.0, resp.Rates[0].Amount)
}
