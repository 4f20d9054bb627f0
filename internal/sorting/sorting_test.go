package sorting

import (
	"reflect"
	"testing"

	"covid-dashboard/internal/domain"
)

func rows() []domain.Region {
	return []domain.Region{
		{Country: "Écuador", Continent: "South America", Cases: 10, CasesPerOneMillion: 2.5},
		{Country: "brazil", Continent: "South America", Cases: 30, CasesPerOneMillion: 1.5},
		{Country: "Austria", Continent: "Europe", Cases: 10, CasesPerOneMillion: 9},
		{Country: "Zambia", Continent: "Africa", Cases: 20, CasesPerOneMillion: 0},
		{Country: "Chile", Continent: "South America", Cases: 10},
	}
}

func names(rs []domain.Region) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Country
	}
	return out
}

func TestSortBy_StringsAreCollated(t *testing.T) {
	r := rows()
	SortBy(r, FieldCountry, true)
	want := []string{"Austria", "brazil", "Chile", "Écuador", "Zambia"}
	if !reflect.DeepEqual(names(r), want) {
		t.Fatalf("expected %v, got %v", want, names(r))
	}

	SortBy(r, FieldCountry, false)
	want = []string{"Zambia", "Écuador", "Chile", "brazil", "Austria"}
	if !reflect.DeepEqual(names(r), want) {
		t.Fatalf("expected %v, got %v", want, names(r))
	}
}

func TestSortBy_NumbersAreStable(t *testing.T) {
	r := rows()
	SortBy(r, FieldCases, true)
	want := []string{"Écuador", "Austria", "Chile", "Zambia", "brazil"}
	if !reflect.DeepEqual(names(r), want) {
		t.Fatalf("ascending: expected %v, got %v", want, names(r))
	}

	r = rows()
	SortBy(r, FieldCases, false)
	want = []string{"brazil", "Zambia", "Écuador", "Austria", "Chile"}
	if !reflect.DeepEqual(names(r), want) {
		t.Fatalf("descending: expected %v, got %v", want, names(r))
	}
}

func TestSortBy_StableOnEqualStrings(t *testing.T) {
	r := rows()
	SortBy(r, FieldContinent, true)
	want := []string{"Zambia", "Austria", "Écuador", "brazil", "Chile"}
	if !reflect.DeepEqual(names(r), want) {
		t.Fatalf("expected %v, got %v", want, names(r))
	}
}

func TestSortBy_Idempotent(t *testing.T) {
	for _, f := range []Field{FieldCountry, FieldContinent, FieldCases, FieldCasesPerOneMillion} {
		for _, asc := range []bool{true, false} {
			r := rows()
			SortBy(r, f, asc)
			once := names(r)
			SortBy(r, f, asc)
			if !reflect.DeepEqual(once, names(r)) {
				t.Errorf("%s asc=%v: %v then %v", f, asc, once, names(r))
			}
		}
	}
}

func TestSortBy_UnknownFieldKeepsOrder(t *testing.T) {
	r := rows()
	SortBy(r, Field("bogus"), true)
	if !reflect.DeepEqual(names(r), names(rows())) {
		t.Fatalf("unknown field changed order: %v", names(r))
	}
	if Field("bogus").Known() || !FieldCases.Known() {
		t.Fatal("Known misreports fields")
	}
}

func TestDirections_PerColumnMemory(t *testing.T) {
	d := NewDirections()
	if _, ok := d.Last(FieldCases); ok {
		t.Fatal("no direction before first toggle")
	}
	if !d.Toggle(FieldCases) {
		t.Fatal("first toggle sorts ascending")
	}
	if d.Toggle(FieldCases) {
		t.Fatal("second toggle sorts descending")
	}
	if !d.Toggle(FieldCountry) {
		t.Fatal("a new column starts ascending regardless of other columns")
	}
	if asc, _ := d.Last(FieldCases); asc {
		t.Fatal("cases must remember descending")
	}
	if !d.Toggle(FieldCases) {
		t.Fatal("revisited column flips from its own last direction")
	}
}
