// Package pocketbase is a typed client for the PocketBase record API.
//
// A Client is bound to one server; Collection handles scope operations to one
// collection. Read operations are generic package-level functions so callers
// decode directly into their own record types:
//
//	client, err := pocketbase.New("https://pb.example.com")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	users := client.Collection("users")
//	if _, err := users.AuthWithPassword(ctx, "ada@example.com", "secret"); err != nil {
//		log.Fatal(err)
//	}
//
//	articles, err := pocketbase.GetFullList[Article](client.Collection("articles")).
//		Filter("published = true").
//		Sort("-created").
//		Call(ctx)
//
// Failures are typed per operation family: sentinel errors for plain HTTP
// rejections (ErrNotFound, ErrForbidden, ...), structured errors where the
// server reports details (*BadRequestError, *EmptyFieldError), and
// *UnreachableError when no HTTP response was received at all.
package pocketbase
