package buildmeta

// Fill exposes fill to tests.
var Fill = fill
