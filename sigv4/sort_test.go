package sigv4

import "testing"

func TestSortKeyValuePairsByQueryOrder(t *testing.T) {
	records := []keyValuePair{
		{key: "b", value: "2", index: 0},
		{key: "a", value: "1", index: 1},
		{key: "b", value: "1", index: 2},
	}

	sortKeyValuePairs(records, compareQueryFieldValue)

	expected := []keyValuePair{
		{key: "a", value: "1", index: 1},
		{key: "b", value: "1", index: 2},
		{key: "b", value: "2", index: 0},
	}
	for i := range expected {
		if records[i].key != expected[i].key || records[i].value != expected[i].value {
			t.Errorf("position %d: expected %s=%s, got %s=%s",
				i, expected[i].key, expected[i].value, records[i].key, records[i].value)
		}
	}
}

func TestSortKeyValuePairsPrefixOrder(t *testing.T) {
	// A shorter key sharing a prefix sorts first, and upper case sorts
	// before lower case in byte order.
	records := []keyValuePair{
		{key: "abc", index: 0},
		{key: "ab", index: 1},
		{key: "Ab", index: 2},
	}

	sortKeyValuePairs(records, compareQueryFieldValue)

	want := []string{"Ab", "ab", "abc"}
	for i, key := range want {
		if records[i].key != key {
			t.Errorf("position %d: expected %s, got %s", i, key, records[i].key)
		}
	}
}

func TestSortKeyValuePairsStableTies(t *testing.T) {
	// Equal header names keep insertion order through the index tiebreak,
	// even though the underlying sort is not stable.
	records := []keyValuePair{
		{key: "h", value: "third", index: 2},
		{key: "h", value: "first", index: 0},
		{key: "a", value: "x", index: 3},
		{key: "h", value: "second", index: 1},
	}

	sortKeyValuePairs(records, compareHeaderName)

	want := []string{"x", "first", "second", "third"}
	for i, value := range want {
		if records[i].value != value {
			t.Errorf("position %d: expected %s, got %s", i, value, records[i].value)
		}
	}
}

func TestSortKeyValuePairsDegenerate(t *testing.T) {
	sortKeyValuePairs(nil, compareQueryFieldValue)

	one := []keyValuePair{{key: "only"}}
	sortKeyValuePairs(one, compareQueryFieldValue)
	if one[0].key != "only" {
		t.Error("single record should be untouched")
	}

	// Already sorted input, reverse sorted input.
	sorted := []keyValuePair{{key: "a"}, {key: "b"}, {key: "c"}, {key: "d"}}
	sortKeyValuePairs(sorted, compareQueryFieldValue)
	reversed := []keyValuePair{{key: "d"}, {key: "c"}, {key: "b"}, {key: "a"}}
	sortKeyValuePairs(reversed, compareQueryFieldValue)
	for i := range sorted {
		if sorted[i].key != reversed[i].key {
			t.Errorf("position %d: expected %s, got %s", i, sorted[i].key, reversed[i].key)
		}
	}
}
