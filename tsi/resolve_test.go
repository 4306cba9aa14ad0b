package tsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

func catalogFixture() *Catalog {
	return NewCatalog([]models.Instance{
		{
			TimeSeriesID: []string{"006dfc2d-0324-4937-998c-d16f3b4f1952", "T1"},
			TypeID:       "1be09af9-f089-4d6b-9f0b-48018b5f7393",
			Name:         "F1W7.GS1",
			Description:  "ContosoFarm1W7_GenSpeed1",
		},
		{
			TimeSeriesID: []string{"c4b9c7e6-9d1a-4038-9fb9-22eb5a944eb2"},
			TypeID:       "1be09af9-f089-4d6b-9f0b-48018b5f7393",
			Name:         "F1W8.GS2",
			Description:  "ContosoFarm1W8_GenSpeed2",
		},
		{
			TimeSeriesID: []string{"9f3e0f6a-57b4-41cd-9a33-7f8c51db10ce"},
			Name:         "F2W1.TMP",
		},
	})
}

func TestIDsByNameKeepsOrderAndMarksUnresolved(t *testing.T) {
	ids := catalogFixture().IDsByName([]string{"F1W8.GS2", "NoSuchSeries", "F1W7.GS1"})

	require.Len(t, ids, 3)
	require.NotNil(t, ids[0])
	assert.Equal(t, "c4b9c7e6-9d1a-4038-9fb9-22eb5a944eb2", *ids[0])
	assert.Nil(t, ids[1])
	require.NotNil(t, ids[2])
	assert.Equal(t, "006dfc2d-0324-4937-998c-d16f3b4f1952", *ids[2])
}

func TestTypeIDsByNameNilWhenTypeMissing(t *testing.T) {
	typeIDs := catalogFixture().TypeIDsByName([]string{"F1W7.GS1", "F2W1.TMP"})

	require.Len(t, typeIDs, 2)
	require.NotNil(t, typeIDs[0])
	assert.Equal(t, "1be09af9-f089-4d6b-9f0b-48018b5f7393", *typeIDs[0])
	assert.Nil(t, typeIDs[1])
}

func TestIDsByDescription(t *testing.T) {
	ids := catalogFixture().IDsByDescription([]string{"ContosoFarm1W7_GenSpeed1", "unknown"})

	require.Len(t, ids, 2)
	require.NotNil(t, ids[0])
	assert.Equal(t, "006dfc2d-0324-4937-998c-d16f3b4f1952", *ids[0])
	assert.Nil(t, ids[1])
}

func TestNamesByID(t *testing.T) {
	names := catalogFixture().NamesByID([]string{"c4b9c7e6-9d1a-4038-9fb9-22eb5a944eb2", "missing-id"})

	require.Len(t, names, 2)
	require.NotNil(t, names[0])
	assert.Equal(t, "F1W8.GS2", *names[0])
	assert.Nil(t, names[1])
}

func TestIDsByAssetSubstringMatch(t *testing.T) {
	ids := catalogFixture().IDsByAsset("F1W")

	assert.Equal(t, []string{
		"006dfc2d-0324-4937-998c-d16f3b4f1952",
		"c4b9c7e6-9d1a-4038-9fb9-22eb5a944eb2",
	}, ids)
}

func TestIDsByAssetNoMatchYieldsEmptyList(t *testing.T) {
	ids := catalogFixture().IDsByAsset("SolarPlant")

	assert.Empty(t, ids)
}

func TestDuplicateNameKeepsLastEntry(t *testing.T) {
	catalog := NewCatalog([]models.Instance{
		{TimeSeriesID: []string{"first-id"}, Name: "Sensor"},
		{TimeSeriesID: []string{"second-id"}, Name: "Sensor"},
	})

	ids := catalog.IDsByName([]string{"Sensor"})
	require.NotNil(t, ids[0])
	assert.Equal(t, "second-id", *ids[0])
}

func TestInstancesWithoutIDAreIgnored(t *testing.T) {
	catalog := NewCatalog([]models.Instance{
		{Name: "NoID", Description: "NoID"},
	})

	assert.Nil(t, catalog.IDsByName([]string{"NoID"})[0])
	assert.Nil(t, catalog.IDsByDescription([]string{"NoID"})[0])
	assert.Empty(t, catalog.IDsByAsset("NoID"))
}
