package model

// Default field templates per collection type. A template is just a
// fresh list of field descriptors; constructors clone nothing because
// every call builds new fields.

const (
	categoryPersonal   = "Personal"
	categoryPublishing = "Publishing"
	categoryClass      = "Classification"
	categoryCondition  = "Condition"
)

// baseFields is the minimal schema: a protected title.
func baseFields() []*Field {
	title := mustField("title", "Title", TypeLine)
	title.SetFlags(NoDelete)
	title.SetFormat(FormatTitle)
	return []*Field{title}
}

// bookFields is the default book schema.
func bookFields() []*Field {
	var fields []*Field
	add := func(f *Field) { fields = append(fields, f) }

	title := mustField("title", "Title", TypeLine)
	title.SetFlags(NoDelete)
	title.SetFormat(FormatTitle)
	add(title)

	subtitle := mustField("subtitle", "Subtitle", TypeLine)
	subtitle.SetFormat(FormatTitle)
	add(subtitle)

	author := mustField("author", "Author", TypeLine)
	author.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	author.SetFormat(FormatName)
	add(author)

	binding := mustChoiceField("binding", "Binding",
		[]string{"Hardback", "Paperback", "Trade Paperback", "E-Book", "Magazine", "Journal"})
	binding.SetFlags(AllowGrouped)
	add(binding)

	purDate := mustField("pur_date", "Purchase Date", TypeLine)
	purDate.SetCategory(categoryPersonal)
	purDate.SetFormat(FormatDate)
	add(purDate)

	purPrice := mustField("pur_price", "Purchase Price", TypeLine)
	purPrice.SetCategory(categoryPersonal)
	add(purPrice)

	publisher := mustField("publisher", "Publisher", TypeLine)
	publisher.SetCategory(categoryPublishing)
	publisher.SetFlags(AllowCompletion | AllowGrouped)
	add(publisher)

	edition := mustField("edition", "Edition", TypeLine)
	edition.SetCategory(categoryPublishing)
	edition.SetFlags(AllowCompletion)
	add(edition)

	crYear := mustField("cr_year", "Copyright Year", TypeNumber)
	crYear.SetCategory(categoryPublishing)
	crYear.SetFlags(AllowGrouped | AllowMultiple)
	add(crYear)

	pubYear := mustField("pub_year", "Publication Year", TypeNumber)
	pubYear.SetCategory(categoryPublishing)
	pubYear.SetFlags(AllowGrouped)
	add(pubYear)

	isbn := mustField("isbn", "ISBN#", TypeLine)
	isbn.SetCategory(categoryPublishing)
	isbn.SetDescription("International Standard Book Number")
	add(isbn)

	lccn := mustField("lccn", "LCCN#", TypeLine)
	lccn.SetCategory(categoryPublishing)
	lccn.SetDescription("Library of Congress Control Number")
	add(lccn)

	pages := mustField("pages", "Pages", TypeNumber)
	pages.SetCategory(categoryPublishing)
	add(pages)

	language := mustField("language", "Language", TypeLine)
	language.SetCategory(categoryPublishing)
	language.SetFlags(AllowCompletion | AllowGrouped | AllowMultiple)
	add(language)

	genre := mustField("genre", "Genre", TypeLine)
	genre.SetCategory(categoryClass)
	genre.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	add(genre)

	keyword := mustField("keyword", "Keywords", TypeLine)
	keyword.SetCategory(categoryClass)
	keyword.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	add(keyword)

	series := mustField("series", "Series", TypeLine)
	series.SetCategory(categoryClass)
	series.SetFlags(AllowCompletion | AllowGrouped)
	series.SetFormat(FormatTitle)
	add(series)

	seriesNum := mustField("series_num", "Series Number", TypeNumber)
	seriesNum.SetCategory(categoryClass)
	add(seriesNum)

	condition := mustChoiceField("condition", "Condition",
		[]string{"New", "Used", "Worn"})
	condition.SetCategory(categoryCondition)
	add(condition)

	signed := mustField("signed", "Signed", TypeBool)
	signed.SetCategory(categoryPersonal)
	add(signed)

	read := mustField("read", "Read", TypeBool)
	read.SetCategory(categoryPersonal)
	add(read)

	gift := mustField("gift", "Gift", TypeBool)
	gift.SetCategory(categoryPersonal)
	add(gift)

	loaned := mustField("loaned", "Loaned", TypeBool)
	loaned.SetCategory(categoryPersonal)
	add(loaned)

	rating := mustField("rating", "Rating", TypeRating)
	rating.SetCategory(categoryPersonal)
	rating.SetFlags(AllowGrouped)
	add(rating)

	comments := mustField("comments", "Comments", TypePara)
	add(comments)

	return fields
}

// videoFields is the default video schema.
func videoFields() []*Field {
	fields := baseFields()

	medium := mustChoiceField("medium", "Medium",
		[]string{"DVD", "Blu-ray", "VHS", "Digital"})
	medium.SetFlags(AllowGrouped)
	fields = append(fields, medium)

	year := mustField("year", "Production Year", TypeNumber)
	year.SetFlags(AllowGrouped)
	fields = append(fields, year)

	director := mustField("director", "Director", TypeLine)
	director.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	director.SetFormat(FormatName)
	fields = append(fields, director)

	cast := mustField("cast", "Cast", TypeTable2)
	cast.SetProperty("column1", "Actor")
	cast.SetProperty("column2", "Role")
	cast.SetFormat(FormatName)
	fields = append(fields, cast)

	genre := mustField("genre", "Genre", TypeLine)
	genre.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	fields = append(fields, genre)

	comments := mustField("comments", "Comments", TypePara)
	return append(fields, comments)
}

// albumFields is the default music album schema.
func albumFields() []*Field {
	fields := baseFields()

	medium := mustChoiceField("medium", "Medium",
		[]string{"Compact Disc", "Cassette", "Vinyl", "Digital"})
	medium.SetFlags(AllowGrouped)
	fields = append(fields, medium)

	artist := mustField("artist", "Artist", TypeLine)
	artist.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	artist.SetFormat(FormatPlain)
	fields = append(fields, artist)

	label := mustField("label", "Label", TypeLine)
	label.SetFlags(AllowCompletion | AllowGrouped)
	fields = append(fields, label)

	year := mustField("year", "Year", TypeNumber)
	year.SetFlags(AllowGrouped)
	fields = append(fields, year)

	track := mustField("track", "Tracks", TypeTable2)
	track.SetProperty("column1", "Title")
	track.SetProperty("column2", "Artist")
	track.SetFormat(FormatTitle)
	fields = append(fields, track)

	genre := mustField("genre", "Genre", TypeLine)
	genre.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	fields = append(fields, genre)

	comments := mustField("comments", "Comments", TypePara)
	return append(fields, comments)
}

// defaultFieldsFor returns the default field template for a type.
func defaultFieldsFor(ctype CollectionType) []*Field {
	switch ctype {
	case TypeBook, TypeComicBook:
		return bookFields()
	case TypeVideo:
		return videoFields()
	case TypeAlbum:
		return albumFields()
	case TypeBibtex:
		return bibtexFields()
	default:
		return baseFields()
	}
}
