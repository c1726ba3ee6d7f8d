package fakeapi

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// seedAccounts hashes at construction time so no digests live in source.
func seedAccounts() []account {
	seed := []struct {
		profile  upstream.Profile
		password string
	}{
		{
			profile: upstream.Profile{
				ID: 1, Username: "emilys", Email: "emily.johnson@x.dummyjson.com",
				FirstName: "Emily", LastName: "Johnson", Gender: "female",
				Image: "https://dummyjson.com/icon/emilys/128",
			},
			password: "emilyspass",
		},
		{
			profile: upstream.Profile{
				ID: 2, Username: "michaelw", Email: "michael.williams@x.dummyjson.com",
				FirstName: "Michael", LastName: "Williams", Gender: "male",
				Image: "https://dummyjson.com/icon/michaelw/128",
			},
			password: "michaelwpass",
		},
		{
			profile: upstream.Profile{
				ID: 3, Username: "sophiab", Email: "sophia.brown@x.dummyjson.com",
				FirstName: "Sophia", LastName: "Brown", Gender: "female",
				Image: "https://dummyjson.com/icon/sophiab/128",
			},
			password: "sophiabpass",
		},
	}

	accounts := make([]account, 0, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.MinCost)
		if err != nil {
			continue
		}
		accounts = append(accounts, account{
			profile:      s.profile,
			passwordHash: string(hash),
		})
	}
	return accounts
}

func seedUsers() []upstream.UserRecord {
	mk := func(id int, first, last, email string, age int, gender, role, country, department string) upstream.UserRecord {
		u := upstream.UserRecord{
			ID: id, FirstName: first, LastName: last, Email: email,
			Age: age, Gender: gender, Role: role,
		}
		u.Address.Country = country
		u.Company.Department = department
		return u
	}

	return []upstream.UserRecord{
		mk(1, "Emily", "Johnson", "emily.johnson@x.dummyjson.com", 28, "female", "admin", "United States", "Engineering"),
		mk(2, "Michael", "Williams", "michael.williams@x.dummyjson.com", 35, "male", "admin", "United States", "Support"),
		mk(3, "Sophia", "Brown", "sophia.brown@x.dummyjson.com", 42, "female", "moderator", "United Kingdom", "Research and Development"),
		mk(4, "James", "Davis", "james.davis@x.dummyjson.com", 45, "male", "user", "Canada", "Engineering"),
		mk(5, "Emma", "Miller", "emma.miller@x.dummyjson.com", 30, "female", "user", "Germany", "Marketing"),
		mk(6, "Olivia", "Wilson", "olivia.wilson@x.dummyjson.com", 22, "female", "user", "", ""),
		mk(7, "Alexander", "Jones", "alexander.jones@x.dummyjson.com", 38, "male", "moderator", "Australia", "Accounting"),
		mk(8, "Ava", "Taylor", "ava.taylor@x.dummyjson.com", 27, "female", "user", "France", "Services"),
	}
}

func seedProducts() []upstream.ProductRecord {
	mk := func(id int, title, description string, price float64, category string, rating float64, tags ...string) upstream.ProductRecord {
		return upstream.ProductRecord{
			ID: id, Title: title, Description: description,
			Price: price, Category: category, Rating: rating, Tags: tags,
			Thumbnail: "https://cdn.dummyjson.com/products/images/" + category + "/thumbnail.webp",
		}
	}

	return []upstream.ProductRecord{
		mk(1, "Essence Mascara Lash Princess", "Popular mascara known for volumizing effects", 9.99, "beauty", 4.94, "beauty", "mascara"),
		mk(2, "Eyeshadow Palette with Mirror", "Versatile range of eyeshadow shades", 19.99, "beauty", 3.28, "beauty", "eyeshadow"),
		mk(3, "Powder Canister", "Fine setting powder for a flawless finish", 14.99, "beauty", 3.82, "beauty", "face powder"),
		mk(4, "Apple", "Fresh and crisp apple", 1.99, "groceries", 2.96, "fruits"),
		mk(5, "Beef Steak", "High-quality cut suitable for grilling", 12.99, "groceries", 2.83, "meat"),
		mk(6, "Essence Bottle", "Fragrant essence for home and body", 29.99, "fragrances", 4.61, "fragrances", "perfumes"),
		mk(7, "Calvin Klein CK One", "Classic unisex fragrance", 49.99, "fragrances", 4.85, "fragrances", "perfumes"),
		mk(8, "Annibale Colombo Bed", "Luxurious king size bed", 1899.99, "furniture", 4.77, "furniture", "beds"),
	}
}
