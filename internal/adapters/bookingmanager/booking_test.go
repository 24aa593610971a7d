package bookingmanager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmsbridge/internal/wire"
)

func TestMapBookingRate_MixedAttributeAndChildTax(t *testing.T) {
	doc := mustXML(t, `
		<rate>
			<total>220.00</total>
			<final>220.00</final>
			<tax total="35.20"><final>255.20</final></tax>
			<prepayment>66.00</prepayment>
			<balance_due>189.20</balance_due>
		</rate>`)

	rate := mapBookingRate(doc["rate"])
	assert.Equal(t, BookingRate{
		Total:      220.00,
		Final:      220.00,
		Tax:        BookingTax{Total: 35.20, Final: 255.20},
		Prepayment: 66.00,
		BalanceDue: 189.20,
	}, rate)
}

func TestMapBooking_Full(t *testing.T) {
	doc := mustXML(t, `
		<booking id="9021" status="confirmed">
			<identifier>BK-9021</identifier>
			<provider_id>12</provider_id>
			<channel_identifier>airbnb</channel_identifier>
			<arrival>2024-06-10</arrival>
			<departure>2024-06-17</departure>
			<guest_name>Iva Kovac</guest_name>
			<guest_email>iva@example.com</guest_email>
			<guest_phone>+385911234</guest_phone>
			<guest_country>HR</guest_country>
			<adults>2</adults>
			<children>1</children>
			<property id="341">Villa Mar</property>
			<rate>
				<total>980.00</total><final>1050.00</final>
				<tax total="70.00"><final>1120.00</final></tax>
				<fee>30.00</fee>
			</rate>
			<created>2024-01-02 08:00:00</created>
			<modified>2024-01-03 09:30:00</modified>
		</booking>`)

	b, err := mapBooking(doc["booking"])
	require.NoError(t, err)

	assert.Equal(t, 9021, b.ID)
	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.Equal(t, "BK-9021", b.Identifier)
	assert.Equal(t, "2024-06-10", b.Arrival.Format("2006-01-02"))
	assert.Equal(t, 2, b.Adults)
	assert.Equal(t, 1, b.Children)
	assert.Equal(t, PropertyRef{ID: 341, Name: "Villa Mar"}, b.Property)
	assert.Equal(t, 1050.00, b.Rate.Final)
	assert.Equal(t, 70.00, b.Rate.Tax.Total)
	assert.Equal(t, 30.00, b.Rate.Fee)
}

func TestMapBooking_MissingID(t *testing.T) {
	doc := mustXML(t, `<booking status="confirmed"><guest_name>X</guest_name></booking>`)
	_, err := mapBooking(doc["booking"])
	var me *wire.MappingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "booking", me.Entity)
}

func TestMapBooking_UnknownStatusFallsBack(t *testing.T) {
	doc := mustXML(t, `<booking id="1" status="weird"/>`)
	b, err := mapBooking(doc["booking"])
	require.NoError(t, err)
	assert.Equal(t, BookingStatusError, b.Status)
}

func TestMapBooking_MissingRateDefaults(t *testing.T) {
	doc := mustXML(t, `<booking id="7" status="pending"/>`)
	b, err := mapBooking(doc["booking"])
	require.NoError(t, err)
	// a booking's rate is mandatory: missing node yields a zero-valued rate
	assert.Equal(t, BookingRate{}, b.Rate)
}

func TestMapBooking_MalformedDatesFallBackToEpoch(t *testing.T) {
	doc := mustXML(t, `<booking id="3"><arrival>soon</arrival><created>yesterday</created></booking>`)
	b, err := mapBooking(doc["booking"])
	require.NoError(t, err)
	assert.Equal(t, wire.Epoch, b.Arrival)
	assert.Equal(t, wire.Epoch, b.Created)
}

func TestMapPropertyRef_ScalarForm(t *testing.T) {
	doc := mustXML(t, `<booking id="3"><property>123</property></booking>`)
	b, err := mapBooking(doc["booking"])
	require.NoError(t, err)
	assert.Equal(t, PropertyRef{ID: 123}, b.Property)
}

func TestMapBookingsResponse_SingleBookingLifted(t *testing.T) {
	doc := mustXML(t, `<bookings><booking id="11" status="pending"/></bookings>`)
	resp, err := mapBookingsResponse(doc)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, 11, resp.Bookings[0].ID)
}

func TestMapBookingsResponse_BadItemFailsEnvelope(t *testing.T) {
	doc := mustXML(t, `<bookings><booking id="1"/><booking status="confirmed"><guest_name>x</guest_name></booking></bookings>`)
	_, err := mapBookingsResponse(doc)
	require.Error(t, err)
	var me *wire.MappingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "booking", me.Entity)
}
