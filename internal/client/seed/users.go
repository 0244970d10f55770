// Package seed holds the bundled supplementary user records merged into
// every cache snapshot.
package seed

import "github.com/AliKaner/mc-case/internal/client/models"

func user(id int64, name, username, email, phone, website, street, suite, city, zip, lat, lng, company, phrase, bs string) models.Record {
	return models.Record{
		ID:       models.IntID(id),
		Name:     name,
		Username: username,
		Email:    email,
		Phone:    phone,
		Website:  website,
		Address: &models.Address{
			Street:  street,
			Suite:   suite,
			City:    city,
			Zipcode: zip,
			Geo:     models.Geo{Lat: lat, Lng: lng},
		},
		Company: models.Company{Name: company, CatchPhrase: phrase, BS: bs},
	}
}

var users = []models.Record{
	user(11, "Ahmet Yılmaz", "ahmety", "ahmet.yilmaz@example.com.tr", "+90 532 111 22 33", "ahmetyilmaz.dev",
		"Bağdat Caddesi", "No: 120", "İstanbul", "34728", "40.9634", "29.0635",
		"Yılmaz Yazılım", "Yerli ve milli çözümler", "dijital dönüşüm"),
	user(12, "Ayşe Demir", "aysed", "ayse.demir@example.com.tr", "+90 533 222 33 44", "aysedemir.com",
		"Atatürk Bulvarı", "Daire 5", "Ankara", "06420", "39.9208", "32.8541",
		"Demir Danışmanlık", "Güvenilir iş ortağınız", "kurumsal danışmanlık"),
	user(13, "Mehmet Kaya", "mkaya", "mehmet.kaya@example.com.tr", "+90 535 333 44 55", "mehmetkaya.net",
		"Kordon Boyu", "Kat 3", "İzmir", "35220", "38.4237", "27.1428",
		"Kaya Lojistik", "Zamanında teslimat", "tedarik zinciri"),
	user(14, "Zeynep Şahin", "zeynepsahin", "zeynep.sahin@example.com.tr", "+90 536 444 55 66", "zeynepsahin.io",
		"Nilüfer Sokak", "No: 8", "Bursa", "16110", "40.1885", "29.0610",
		"Şahin Tasarım", "Fikirden ürüne", "ürün tasarımı"),
	user(15, "Mustafa Çelik", "mcelik", "mustafa.celik@example.com.tr", "+90 537 555 66 77", "mustafacelik.org",
		"Işıklar Caddesi", "Blok B", "Antalya", "07100", "36.8969", "30.7133",
		"Çelik Turizm", "Güneşin altında", "turizm hizmetleri"),
	user(16, "Elif Arslan", "elifarslan", "elif.arslan@example.com.tr", "+90 538 666 77 88", "elifarslan.me",
		"Sahil Yolu", "No: 42", "Trabzon", "61030", "41.0027", "39.7168",
		"Arslan Gıda", "Karadeniz'in lezzeti", "gıda üretimi"),
	user(17, "Emre Öztürk", "emreozturk", "emre.ozturk@example.com.tr", "+90 539 777 88 99", "emreozturk.tech",
		"Gazi Bulvarı", "Daire 12", "Eskişehir", "26010", "39.7767", "30.5206",
		"Öztürk Teknoloji", "Geleceği kodluyoruz", "yazılım geliştirme"),
	user(18, "Fatma Koç", "fatmakoc", "fatma.koc@example.com.tr", "+90 530 888 99 00", "fatmakoc.co",
		"Selimiye Mahallesi", "No: 3", "Edirne", "22100", "41.6771", "26.5557",
		"Koç Eğitim", "Öğrenmenin yolu", "eğitim teknolojileri"),
}

// Users returns a fresh copy of the supplementary records, in their
// bundled order.
func Users() []models.Record {
	out := make([]models.Record, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
