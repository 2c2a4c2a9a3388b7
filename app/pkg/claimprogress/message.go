package claimprogress

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgSettled            = "Claim has been settled successfully"
	msgRejected           = "Claim has been rejected"
	msgExpectedCompletion = "Expected completion in %d day(s)"
)

var printer = message.NewPrinter(language.English, message.Catalog(newCatalog()))

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	mustSet(b, msgSettled, catalog.String(msgSettled))
	mustSet(b, msgRejected, catalog.String(msgRejected))
	mustSet(b, msgExpectedCompletion, plural.Selectf(1, "%d",
		"=1", "Expected completion in %d day",
		"other", "Expected completion in %d days",
	))
	return b
}

func mustSet(b *catalog.Builder, key string, msg catalog.Message) {
	if err := b.Set(language.English, key, msg); err != nil {
		panic(err)
	}
}
